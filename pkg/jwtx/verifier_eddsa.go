package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSAVerifier validates JWTs signed using EdDSA (Ed25519).
type EdDSAVerifier struct {
	keys *KeySet
	opts VerifyOptions
}

// NewVerifierEdDSA creates a verifier using a KeySet of Ed25519 public keys.
func NewVerifierEdDSA(keys *KeySet, opts VerifyOptions) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, opts: opts}
}

// Verify validates an access token and returns its parsed Claims. The
// space-delimited "scope" claim is folded into Scopes.
func (v *EdDSAVerifier) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if err := v.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if err := v.check(&claims.RegisteredClaims); err != nil {
		return nil, err
	}
	claims.Scopes = claims.AllScopes()
	return claims, nil
}

// VerifyIDToken validates an ID token and splits its claim set back out.
func (v *EdDSAVerifier) VerifyIDToken(tokenStr string) (*IDTokenClaims, error) {
	claims := &IDTokenClaims{}
	if err := v.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if err := v.check(&claims.RegisteredClaims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (v *EdDSAVerifier) parse(tokenStr string, dst jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithLeeway(v.opts.Leeway),
	)

	token, err := parser.ParseWithClaims(tokenStr, dst, v.keyFunc)
	if err != nil {
		return fmt.Errorf("jwtx: parse or verify: %w", err)
	}
	if !token.Valid {
		return ErrInvalidClaim
	}
	return nil
}

func (v *EdDSAVerifier) keyFunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, ErrMissingKID
	}

	pub, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownKID, kid, err)
	}

	key, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, ErrKeyType
	}
	return key, nil
}

func (v *EdDSAVerifier) check(rc *jwt.RegisteredClaims) error {
	return errors.Join(
		validateIssuer(rc, v.opts.Issuer),
		validateAudience(rc, v.opts.Audience),
		validateExpiry(rc, v.opts.Leeway),
	)
}
