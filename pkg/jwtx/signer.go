package jwtx

import "github.com/golang-jwt/jwt/v5"

// Signer is our interface for anything that can sign JWTs. Both Claims and
// IDTokenClaims satisfy jwt.Claims.
type Signer interface {
	Alg() string
	KID() string
	Sign(jwt.Claims) (string, error)
	PublicJWK() JWK
	Validate() error
}

// NewSignerEdDSA creates an EdDSA signer from PEM bytes.
// Ed25519 keys must be in PKCS8 format.
func NewSignerEdDSA(kid string, pemKey []byte) (Signer, error) {
	return newEdDSASigner(kid, pemKey)
}
