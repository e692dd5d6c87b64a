package coachsdk

import "fmt"

// Reason codes returned in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidToken   = "invalid_token"
	ErrorCodeTokenUsed      = "token_used"
	ErrorCodeTokenExpired   = "token_expired"
	ErrorCodeEmailInUse     = "email_in_use"
	ErrorCodeInvalidGrant   = "invalid_grant"
	ErrorCodeMFARequired    = "mfa_required"
	ErrorCodeNotActivated   = "not_activated"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConflict       = "conflict"
	ErrorCodeServerError    = "server_error"
)

// APIError is a failed API call, carrying the HTTP status and the
// server's reason code.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coachsdk: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsCode reports whether err is an APIError with the given reason code.
func IsCode(err error, code string) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == code
}
