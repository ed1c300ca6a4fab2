package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/httpx"
)

const (
	// OAuth2 / RFC 6750 error codes
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeServerError       = "server_error"

	// Service error codes
	ErrorCodeInvalidClaims = "invalid_claims"
	ErrorCodeNotFound      = "not_found"
	ErrorCodeUnavailable   = "temporarily_unavailable"
)

// OAuth2Error represents an OAuth2-style error response. It implements the
// error interface and is used both by the server (to write HTTP responses)
// and by the client (to represent errors).
type OAuth2Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the error code (e.g., "invalid_request", "invalid_claims")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details maps claim names to the reason they were rejected. Only set
	// for invalid_claims.
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *OAuth2Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on Code so callers can compare against the predefined errors.
func (e *OAuth2Error) Is(target error) bool {
	var t *OAuth2Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && (t.StatusCode == 0 || e.StatusCode == t.StatusCode)
}

// WriteError writes this OAuth2Error to an HTTP response writer.
func (e *OAuth2Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	// ErrInvalidRequest is returned when the request is malformed.
	ErrInvalidRequest = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidBody is returned when a JSON body cannot be decoded.
	ErrInvalidBody = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "request body must be a JSON object",
	}

	// ErrInvalidToken is returned when the access token is missing, invalid or expired.
	ErrInvalidToken = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrInsufficientScope is returned when the access token lacks required scopes.
	ErrInsufficientScope = &OAuth2Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientScope,
		Description: "the access token does not have the required scopes",
	}

	// ErrNotFound is returned when the addressed claim or profile does not exist.
	ErrNotFound = &OAuth2Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrUnavailable is returned while the service cannot verify tokens yet.
	ErrUnavailable = &OAuth2Error{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeUnavailable,
		Description: "service is not ready",
	}

	// ErrServerError is returned on unexpected failures.
	ErrServerError = &OAuth2Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewOAuth2Error creates a new OAuth2Error with the given status code, error code, and description.
func NewOAuth2Error(statusCode int, code, description string) *OAuth2Error {
	return &OAuth2Error{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// NewClaimsError turns a claim validation failure (a single
// *claims.InvalidError or several joined together) into a 400
// invalid_claims response carrying one reason per claim.
func NewClaimsError(err error) *OAuth2Error {
	return &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidClaims,
		Description: "one or more claims are invalid",
		Details:     claims.Reasons(err),
	}
}

// parseErrorResponse attempts to parse an HTTP error response into a typed
// error. Returns nil if the response indicates success (2xx status code).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var e OAuth2Error
	if err := json.Unmarshal(body, &e); err == nil && e.Code != "" {
		e.StatusCode = resp.StatusCode
		return &e
	}

	// Bearer failures carry the code in WWW-Authenticate only (RFC 6750 3).
	if code := bearerErrorCode(resp.Header.Get("WWW-Authenticate")); code != "" {
		return &OAuth2Error{
			StatusCode:  resp.StatusCode,
			Code:        code,
			Description: http.StatusText(resp.StatusCode),
		}
	}

	return &OAuth2Error{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

// bearerErrorCode extracts the error="..." parameter of a Bearer challenge.
func bearerErrorCode(challenge string) string {
	_, rest, ok := strings.Cut(challenge, `error="`)
	if !ok {
		return ""
	}
	code, _, ok := strings.Cut(rest, `"`)
	if !ok {
		return ""
	}
	return code
}
