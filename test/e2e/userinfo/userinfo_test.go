//go:build e2e

package userinfo_test

import (
	"errors"
	"testing"

	"github.com/aussiebroadwan/idclaims/pkg/authsdk"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	client, _ := setupUserInfoContainer(t, nil)

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Keys)
}

func TestClaimCatalog(t *testing.T) {
	client, _ := setupUserInfoContainer(t, nil)

	catalog, err := client.ListClaims(t.Context())
	require.NoError(t, err)
	require.Len(t, catalog, len(claims.AllKeys()))

	def, err := client.GetClaim(t.Context(), "phone_number")
	require.NoError(t, err)
	require.Equal(t, "phone", def.Scope)

	_, err = client.GetClaim(t.Context(), "PHONE_NUMBER")
	require.True(t, errors.Is(err, authsdk.ErrNotFound))

	res, err := client.ValidateClaims(t.Context(), claims.Set{
		"email":     "ada@example.com",
		"birthdate": "2023-02-29",
	})
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.Contains(t, res.Errors, "birthdate")
}

func TestProfileAndUserInfoFlow(t *testing.T) {
	client, iss := setupUserInfoContainer(t, nil)
	ctx := t.Context()

	admin := client.WithToken(iss.token(t, "admin", "admin:read", "admin:write"))

	created, err := admin.CreateProfile(ctx, claims.Set{
		"name":                  "Ada Lovelace",
		"email":                 "ada@example.com",
		"email_verified":        true,
		"phone_number":          "+441234567890",
		"phone_number_verified": false,
	})
	require.NoError(t, err)
	sub := created.Subject

	_, err = admin.PutProfile(ctx, sub, claims.Set{"email": "broken"})
	var oe *authsdk.OAuth2Error
	require.ErrorAs(t, err, &oe)
	require.Equal(t, authsdk.ErrorCodeInvalidClaims, oe.Code)
	require.Contains(t, oe.Details, "email")

	user := client.WithToken(iss.token(t, sub, "openid", "email"))
	info, err := user.UserInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, sub, info.Subject())
	require.Equal(t, "ada@example.com", info["email"])
	require.NotContains(t, info, "name")
	require.NotContains(t, info, "phone_number")

	idt, err := admin.IDTokenClaims(ctx, authsdk.IDTokenClaimsRequest{
		Subject:  sub,
		Scope:    "openid profile",
		Audience: []string{"client-1"},
		Nonce:    "n-0S6_WzA2Mj",
	})
	require.NoError(t, err)
	require.Equal(t, testIssuer, idt["iss"])
	require.Equal(t, "Ada Lovelace", idt["name"])
	require.Equal(t, "n-0S6_WzA2Mj", idt["nonce"])

	require.NoError(t, admin.DeleteProfile(ctx, sub))
	_, err = admin.GetProfile(ctx, sub)
	require.True(t, errors.Is(err, authsdk.ErrNotFound))
}

func TestUserInfoRejectsBadTokens(t *testing.T) {
	client, iss := setupUserInfoContainer(t, nil)

	_, err := client.WithToken("not-a-jwt").UserInfo(t.Context())
	require.True(t, errors.Is(err, authsdk.ErrInvalidToken))

	_, err = client.WithToken(iss.token(t, "user-1", "email")).UserInfo(t.Context())
	require.True(t, errors.Is(err, authsdk.ErrInsufficientScope))
}
