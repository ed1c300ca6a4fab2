package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestJWKPEM(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	pemStr, err := jwtx.NewEd25519JWK("test-key-id", "sig", "EdDSA", publicKey).PEM()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(pemStr, "-----BEGIN PUBLIC KEY-----"))

	block, _ := pem.Decode([]byte(pemStr))
	require.NotNil(t, block)
	require.Equal(t, "PUBLIC KEY", block.Type)

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)
	require.Equal(t, publicKey, parsed.(ed25519.PublicKey))
}

func TestJWKPEMErrors(t *testing.T) {
	_, err := jwtx.JWK{Kty: "RSA", Kid: "k"}.PEM()
	require.ErrorContains(t, err, "unsupported kty")

	_, err = jwtx.JWK{Kty: "OKP", Crv: "X25519", X: "AA"}.PEM()
	require.ErrorContains(t, err, "unsupported OKP curve")

	_, err = jwtx.JWK{Kty: "OKP", Crv: "Ed25519", X: "!!!"}.PEM()
	require.Error(t, err)
}

func TestKeySetResetFromJWKS(t *testing.T) {
	a := newTestSigner(t, "a")
	b := newTestSigner(t, "b")

	ks := jwtx.NewKeySet()
	require.False(t, ks.IsReady())
	require.NoError(t, ks.AddSigner(a))
	require.True(t, ks.IsReady())

	doc := `{"keys":[` +
		`{"kty":"RSA","kid":"rsa-1","n":"AQAB","e":"AQAB"},` +
		`{"kty":"OKP","use":"enc","crv":"Ed25519","kid":"enc-1","x":"` + b.PublicJWK().X + `"},` +
		`{"kty":"OKP","crv":"X25519","kid":"x-1","x":"hSDwCYkwp1R0i33ctD73Wg2_Og0mOBr066SpjqqbTmo"},` +
		`{"kty":"OKP","crv":"Ed448","kid":"ed448-1","x":"AAAA"},` +
		`{"kty":"OKP","use":"sig","crv":"Ed25519","kid":"b","x":"` + b.PublicJWK().X + `"}]}`
	jwks, err := jwtx.ParseJWKS([]byte(doc))
	require.NoError(t, err)

	require.NoError(t, ks.ResetFromJWKS(jwks))
	require.Equal(t, 1, ks.Len())

	_, err = ks.Get("a")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
	_, err = ks.Get("b")
	require.NoError(t, err)
	_, err = ks.Get("x-1")
	require.ErrorIs(t, err, jwtx.ErrNoKey, "other OKP curves are skipped")

	t.Run("no usable keys keeps current set", func(t *testing.T) {
		err := ks.ResetFromJWKS(jwtx.JWKS{})
		require.ErrorIs(t, err, jwtx.ErrNoKey)
		require.Equal(t, 1, ks.Len())
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := jwtx.ParseJWKS([]byte("{"))
		require.Error(t, err)
	})
}
