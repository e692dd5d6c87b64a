package coachsdk

import "time"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	// Error is the machine-readable reason code (e.g. "invalid_token").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// BootstrapRequest creates the first coach account, optionally seeding
// the coach's initial athlete roster.
type BootstrapRequest struct {
	Token    string   `json:"token"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Athletes []string `json:"athletes,omitempty"`
}

// BootstrapResponse is returned once the first coach exists.
type BootstrapResponse struct {
	CoachID    string   `json:"coach_id"`
	AthleteIDs []string `json:"athlete_ids,omitempty"`
}

// CoachLoginRequest authenticates a coach. TOTPCode is required once
// the coach has MFA enabled.
type CoachLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// AthleteLoginRequest authenticates an activated athlete.
type AthleteLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token for subsequent requests.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueInviteResponse is returned from the invite issuance endpoint.
type IssueInviteResponse struct {
	InviteURL string    `json:"invite_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AcceptInviteRequest redeems an invite token and sets the athlete's
// login credential.
type AcceptInviteRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AcceptInviteResponse acknowledges a successful acceptance.
type AcceptInviteResponse struct {
	OK bool `json:"ok"`
}

// MFAEnrollResponse carries the TOTP enrollment material.
type MFAEnrollResponse struct {
	Secret  string `json:"secret"`
	QRCode  string `json:"qr_code"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// MFAVerifyRequest proves possession of the enrolled secret.
type MFAVerifyRequest struct {
	Code string `json:"code"`
}

// HealthResponse is returned from the health probes.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
	Database string `json:"database,omitempty"`
}
