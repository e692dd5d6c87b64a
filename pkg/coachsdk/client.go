package coachsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a CoachForge deployment. The zero value is not
// usable; construct it with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Bootstrap creates the first coach account using the operator token.
func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error) {
	var resp BootstrapResponse
	err := c.do(ctx, http.MethodPost, "/v1/bootstrap", "", req, &resp)
	return resp, err
}

// LoginCoach authenticates a coach and returns a session token.
func (c *Client) LoginCoach(ctx context.Context, req CoachLoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/coach/login", "", req, &resp)
	return resp, err
}

// LoginAthlete authenticates an activated athlete.
func (c *Client) LoginAthlete(ctx context.Context, req AthleteLoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/athlete/login", "", req, &resp)
	return resp, err
}

// Logout revokes the session behind the token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", token, nil, nil)
}

// IssueInvite mints an invite for the athlete. Requires a coach token.
func (c *Client) IssueInvite(ctx context.Context, token, athleteID string) (IssueInviteResponse, error) {
	var resp IssueInviteResponse
	path := fmt.Sprintf("/v1/athletes/%s/invites", athleteID)
	err := c.do(ctx, http.MethodPost, path, token, nil, &resp)
	return resp, err
}

// AcceptInvite redeems an invite token. Unauthenticated.
func (c *Client) AcceptInvite(ctx context.Context, req AcceptInviteRequest) error {
	var resp AcceptInviteResponse
	return c.do(ctx, http.MethodPost, "/v1/invites/accept", "", req, &resp)
}

// EnrollTOTP starts MFA enrollment for the coach behind the token.
func (c *Client) EnrollTOTP(ctx context.Context, token string) (MFAEnrollResponse, error) {
	var resp MFAEnrollResponse
	err := c.do(ctx, http.MethodPost, "/v1/mfa/totp/enroll", token, nil, &resp)
	return resp, err
}

// VerifyTOTP proves possession of the enrolled secret and enables MFA.
func (c *Client) VerifyTOTP(ctx context.Context, token, code string) error {
	return c.do(ctx, http.MethodPost, "/v1/mfa/totp/verify", token, MFAVerifyRequest{Code: code}, nil)
}

// Livez hits the liveness probe.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", "", nil, &resp)
	return resp, err
}

// Readyz hits the readiness probe.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("coachsdk: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("coachsdk: failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("coachsdk: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil {
			return &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError, Description: "unparseable error response"}
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("coachsdk: failed to decode response: %w", err)
		}
	}
	return nil
}
