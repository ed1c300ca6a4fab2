package jwtx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/golang-jwt/jwt/v5"
)

// IDTokenClaims is an OpenID Connect ID token payload. The registered
// claims, nonce and auth_time sit next to the released standard claims,
// which are flattened to the top level on the wire.
type IDTokenClaims struct {
	jwt.RegisteredClaims

	Nonce    string           `json:"nonce,omitempty"`
	AuthTime *jwt.NumericDate `json:"auth_time,omitempty"`

	// Claims holds the released user claims (sub included).
	Claims claims.Set `json:"-"`
}

// reservedIDTokenKeys are owned by the token envelope, not the claim set.
var reservedIDTokenKeys = map[string]struct{}{
	"iss": {}, "aud": {}, "exp": {}, "nbf": {}, "iat": {}, "jti": {},
	"nonce": {}, "auth_time": {}, "azp": {}, "at_hash": {}, "c_hash": {},
}

// NewIDTokenClaims wraps an assembled claim set in an ID token envelope.
// The subject is taken from set.
func NewIDTokenClaims(issuer string, audience []string, set claims.Set, nonce string, ttl time.Duration, now time.Time) IDTokenClaims {
	return IDTokenClaims{
		RegisteredClaims: newRegistered(set.Subject(), issuer, audience, ttl, now),
		Nonce:            nonce,
		Claims:           set.Clone(),
	}
}

// MarshalJSON writes the claim set and the envelope as one flat object.
// Envelope members win over claim set entries with the same name.
func (c IDTokenClaims) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Claims)+8)
	for k, v := range c.Claims {
		if _, reserved := reservedIDTokenKeys[k]; reserved {
			continue
		}
		out[k] = v
	}

	type envelope struct {
		jwt.RegisteredClaims
		Nonce    string           `json:"nonce,omitempty"`
		AuthTime *jwt.NumericDate `json:"auth_time,omitempty"`
	}
	raw, err := json.Marshal(envelope{c.RegisteredClaims, c.Nonce, c.AuthTime})
	if err != nil {
		return nil, err
	}
	var env map[string]any
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	for k, v := range env {
		out[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat payload back into envelope and claim set.
// Numbers in the claim set decode as json.Number.
func (c *IDTokenClaims) UnmarshalJSON(data []byte) error {
	type envelope struct {
		jwt.RegisteredClaims
		Nonce    string           `json:"nonce,omitempty"`
		AuthTime *jwt.NumericDate `json:"auth_time,omitempty"`
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("jwtx: decode id token: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var all map[string]any
	if err := dec.Decode(&all); err != nil {
		return fmt.Errorf("jwtx: decode id token: %w", err)
	}

	set := make(claims.Set, len(all))
	for k, v := range all {
		if _, reserved := reservedIDTokenKeys[k]; reserved {
			continue
		}
		set[k] = v
	}

	c.RegisteredClaims = env.RegisteredClaims
	c.Nonce = env.Nonce
	c.AuthTime = env.AuthTime
	c.Claims = set
	return nil
}
