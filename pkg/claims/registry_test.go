package claims_test

import (
	"regexp"
	"testing"

	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/stretchr/testify/require"
)

var catalogOrder = []string{
	"address",
	"birthdate",
	"email",
	"email_verified",
	"given_name",
	"gender",
	"family_name",
	"locale",
	"middle_name",
	"name",
	"nickname",
	"picture",
	"phone_number",
	"phone_number_verified",
	"preferred_username",
	"profile",
	"sub",
	"updated_at",
	"website",
	"zoneinfo",
}

func TestAllKeysOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, catalogOrder, claims.AllKeys())

	// Same order every call, and callers can't corrupt it.
	keys := claims.AllKeys()
	keys[0] = "mutated"
	require.Equal(t, catalogOrder, claims.AllKeys())
}

func TestLookupStandard(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	seen := make(map[string]struct{})

	for _, key := range claims.AllKeys() {
		d, err := claims.Lookup(key)
		require.NoError(t, err, key)
		require.Equal(t, key, d.Key())
		require.True(t, claims.IsStandard(key))
		require.Regexp(t, pattern, key)
		require.NotEmpty(t, d.Description(), key)
		require.NotEmpty(t, d.Scope(), key)

		_, dup := seen[key]
		require.False(t, dup, "duplicate key %s", key)
		seen[key] = struct{}{}
	}
}

func TestLookupNotFound(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "Email", "EMAIL", "given name", "zoneinfo_bogus", "roles", " sub"} {
		d, err := claims.Lookup(key)
		require.ErrorIs(t, err, claims.ErrNotFound, key)
		require.True(t, d.IsZero())
		require.False(t, claims.IsStandard(key))
	}
}

func TestDefinitionKinds(t *testing.T) {
	t.Parallel()

	want := map[string]claims.ValueKind{
		"address":               claims.FreeText,
		"birthdate":             claims.IsoDate,
		"email":                 claims.Email,
		"email_verified":        claims.Boolean,
		"given_name":            claims.FreeText,
		"gender":                claims.FreeText,
		"family_name":           claims.FreeText,
		"locale":                claims.BCP47Locale,
		"middle_name":           claims.FreeText,
		"name":                  claims.FreeText,
		"nickname":              claims.FreeText,
		"picture":               claims.URL,
		"phone_number":          claims.E164Phone,
		"phone_number_verified": claims.Boolean,
		"preferred_username":    claims.FreeText,
		"profile":               claims.URL,
		"sub":                   claims.OpaqueIdentifier,
		"updated_at":            claims.UnixTimestamp,
		"website":               claims.URL,
		"zoneinfo":              claims.FreeText,
	}

	defs := claims.Definitions()
	require.Len(t, defs, len(want))
	for _, d := range defs {
		require.Equal(t, want[d.Key()], d.Kind(), d.Key())
	}

	multi := map[string]bool{"given_name": true, "family_name": true, "middle_name": true}
	for _, d := range defs {
		require.Equal(t, multi[d.Key()], d.MultiValued(), d.Key())
	}
	require.True(t, claims.Address.Structured())
	require.False(t, claims.Name.Structured())
}

func TestValueKindString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "iso_date", claims.IsoDate.String())
	require.Equal(t, "e164_phone", claims.E164Phone.String())
	require.Equal(t, "unknown", claims.ValueKind(0).String())

	text, err := claims.UnixTimestamp.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "unix_timestamp", string(text))
}
