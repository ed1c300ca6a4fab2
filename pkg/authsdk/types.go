package authsdk

import "github.com/aussiebroadwan/idclaims/pkg/claims"

// ClaimDefinition describes one standard claim as served by /v1/claims.
type ClaimDefinition struct {
	// Key is the wire claim name (e.g. "email")
	Key string `json:"key"`

	// Kind is the value format (e.g. "email", "iso_date", "unix_timestamp")
	Kind string `json:"kind"`

	// MultiValued is true when space-separated name parts are allowed
	MultiValued bool `json:"multi_valued"`

	// Structured is true when the value may be a JSON object
	Structured bool `json:"structured,omitempty"`

	// Scope is the OpenID Connect scope that releases the claim
	Scope string `json:"scope"`

	// Description is the human-readable meaning of the claim
	Description string `json:"description"`
}

// NewClaimDefinition converts a registry definition to its wire form.
func NewClaimDefinition(d claims.Definition) ClaimDefinition {
	return ClaimDefinition{
		Key:         d.Key(),
		Kind:        d.Kind().String(),
		MultiValued: d.MultiValued(),
		Structured:  d.Structured(),
		Scope:       d.Scope(),
		Description: d.Description(),
	}
}

// ClaimCatalog is the response of GET /v1/claims.
type ClaimCatalog struct {
	Claims []ClaimDefinition `json:"claims"`
}

// ValidateClaimsResponse is the response of POST /v1/claims/validate.
type ValidateClaimsResponse struct {
	// Valid is true when every claim passed
	Valid bool `json:"valid"`

	// Errors maps rejected claim names to their reason
	Errors map[string]string `json:"errors,omitempty"`
}

// IDTokenClaimsRequest is the body of POST /v1/idtoken/claims.
type IDTokenClaimsRequest struct {
	// Subject whose profile is released
	Subject string `json:"sub"`

	// Scope is the space-delimited granted scope string
	Scope string `json:"scope"`

	// Audience is the client the ID token is for
	Audience []string `json:"aud"`

	// Nonce is echoed from the authentication request
	Nonce string `json:"nonce,omitempty"`

	// TTLSeconds overrides the default ID token lifetime
	TTLSeconds int `json:"ttl_seconds,omitempty"`
}

// ProfileResponse is a stored profile with its bookkeeping timestamps.
type ProfileResponse struct {
	Subject   string     `json:"sub"`
	Claims    claims.Set `json:"claims"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains individual component health checks (readyz only)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the profile store status
	Database string `json:"database"`

	// Keys indicates whether verification keys are loaded
	Keys string `json:"keys"`

	// Cache indicates the profile cache status, when one is configured
	Cache string `json:"cache,omitempty"`
}
