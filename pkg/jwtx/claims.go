package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultIDTokenTTL is the default lifetime for ID token claim sets.
	DefaultIDTokenTTL = 5 * time.Minute
)

// Claims are the access-token claims this service accepts from the issuer.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID
	SID string `json:"sid,omitempty"`

	// Permission scopes, e.g. ["openid", "profile", "admin:read"].
	Scopes []string `json:"scopes,omitempty"`

	// Scope is the RFC 8693 space-delimited form. Issuers that send this
	// instead of "scopes" are folded into Scopes by the verifier.
	Scope string `json:"scope,omitempty"`

	// Authentication Methods Reference ["pwd","mfa"]
	AMR []string `json:"amr,omitempty"`
}

// NewAccessClaims builds minimally-correct claims.
func NewAccessClaims(
	subject, sid string,
	scopes, amr []string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: newRegistered(subject, issuer, audience, ttl, now),
		SID:              sid,
		Scopes:           scopes,
		AMR:              amr,
	}
}

func newRegistered(subject, issuer string, audience []string, ttl time.Duration, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings(audience),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// AllScopes returns Scopes merged with the space-delimited Scope claim,
// without duplicates, in first-seen order.
func (c *Claims) AllScopes() []string {
	if c.Scope == "" {
		return c.Scopes
	}
	out := slices.Clone(c.Scopes)
	for _, s := range strings.Fields(c.Scope) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// HasScope reports whether the token grants scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.AllScopes(), scope)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	return validateIssuer(&c.RegisteredClaims, expected)
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	return validateAudience(&c.RegisteredClaims, expected)
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return validateExpiry(&c.RegisteredClaims, 0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	return validateExpiry(&c.RegisteredClaims, leeway)
}

func validateIssuer(rc *jwt.RegisteredClaims, expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if rc.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

func validateAudience(rc *jwt.RegisteredClaims, expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}
	for _, want := range expected {
		if slices.Contains(rc.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

func validateExpiry(rc *jwt.RegisteredClaims, leeway time.Duration) error {
	now := time.Now().UTC()

	if rc.ExpiresAt != nil && now.After(rc.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if rc.NotBefore != nil && now.Before(rc.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
