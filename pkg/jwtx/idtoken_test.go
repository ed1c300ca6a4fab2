package jwtx_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestIDTokenClaimsFlatten(t *testing.T) {
	set := claims.Set{
		"sub":            "01HZX3",
		"email":          "ada@example.com",
		"email_verified": true,
		"iss":            "https://spoofed.example.com",
	}
	now := time.Unix(1_700_000_000, 0)

	idt := jwtx.NewIDTokenClaims(exampleIssuer, []string{"client-1"}, set, "n-0S6", 5*time.Minute, now)
	require.Equal(t, "01HZX3", idt.Subject)

	raw, err := json.Marshal(idt)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	require.Equal(t, exampleIssuer, flat["iss"], "envelope wins over claim set")
	require.Equal(t, "01HZX3", flat["sub"])
	require.Equal(t, "ada@example.com", flat["email"])
	require.Equal(t, true, flat["email_verified"])
	require.Equal(t, "n-0S6", flat["nonce"])
	require.EqualValues(t, 1_700_000_300, flat["exp"])
	require.NotContains(t, flat, "Claims")

	var back jwtx.IDTokenClaims
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, exampleIssuer, back.Issuer)
	require.Equal(t, "n-0S6", back.Nonce)
	require.Equal(t, "ada@example.com", back.Claims["email"])
	require.Equal(t, "01HZX3", back.Claims["sub"])
	require.NotContains(t, back.Claims, "iss")
	require.NotContains(t, back.Claims, "nonce")
}

func TestIDTokenSignAndVerify(t *testing.T) {
	signer := newTestSigner(t, "id-key")
	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	set := claims.Set{"sub": "user-9", "updated_at": int64(1_690_000_000)}
	idt := jwtx.NewIDTokenClaims(exampleIssuer, []string{"client-1"}, set, "", time.Minute, time.Now())

	token, err := signer.Sign(idt)
	require.NoError(t, err)

	v := jwtx.NewVerifierEdDSA(keyset, jwtx.VerifyOptions{Issuer: exampleIssuer, Audience: []string{"client-1"}})
	parsed, err := v.VerifyIDToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-9", parsed.Subject)

	updated, ok := claims.Get[json.Number](parsed.Claims, claims.UpdatedAt)
	require.True(t, ok)
	require.Equal(t, json.Number("1690000000"), updated)
	require.NoError(t, claims.ValidateSet(parsed.Claims))
}
