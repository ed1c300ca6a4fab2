package service_test

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/service"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/idx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const cachePrefix = "userinfo:profile:"

func TestProfilePutAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.profiles.Put(ctx, "user-1", claims.Set{
		"name":           "Ada Lovelace",
		"email":          "ada@example.com",
		"email_verified": true,
	})
	require.NoError(t, err)
	require.Equal(t, "user-1", p.Subject)
	require.Equal(t, "user-1", p.Claims.Subject())
	require.Equal(t, json.Number(strconv.FormatInt(fixedNow.Unix(), 10)), p.Claims["updated_at"])
	require.Equal(t, fixedNow, p.CreatedAt)

	got, err := f.profiles.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", got.Claims["email"])
	require.True(t, f.redis.Exists(cachePrefix+"user-1"), "read fills the cache")

	again, err := f.profiles.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, got.Claims, again.Claims)

	expected := `
# HELP userinfo_profile_cache_lookups_total Profile cache lookups by result (hit, miss, error).
# TYPE userinfo_profile_cache_lookups_total counter
userinfo_profile_cache_lookups_total{result="hit"} 1
userinfo_profile_cache_lookups_total{result="miss"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected),
		"userinfo_profile_cache_lookups_total"))
}

func TestProfilePutInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.profiles.Put(ctx, "user-1", claims.Set{"email": "old@example.com"})
	require.NoError(t, err)
	_, err = f.profiles.Get(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, f.redis.Exists(cachePrefix+"user-1"))

	_, err = f.profiles.Put(ctx, "user-1", claims.Set{"email": "new@example.com"})
	require.NoError(t, err)
	require.False(t, f.redis.Exists(cachePrefix+"user-1"))

	got, err := f.profiles.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "new@example.com", got.Claims["email"])
}

func TestProfilePutRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("subject mismatch", func(t *testing.T) {
		_, err := f.profiles.Put(ctx, "user-1", claims.Set{"sub": "user-2"})
		require.ErrorIs(t, err, service.ErrSubjectMismatch)
	})

	t.Run("matching subject in body is fine", func(t *testing.T) {
		_, err := f.profiles.Put(ctx, "user-1", claims.Set{"sub": "user-1"})
		require.NoError(t, err)
	})

	t.Run("every invalid claim is reported", func(t *testing.T) {
		_, err := f.profiles.Put(ctx, "user-3", claims.Set{
			"email":     "not-an-email",
			"birthdate": "1990-02-30",
			"nickname":  "ok",
		})
		require.ErrorIs(t, err, claims.ErrInvalid)

		reasons := claims.Reasons(err)
		require.Contains(t, reasons, "email")
		require.Contains(t, reasons, "birthdate")
		require.NotContains(t, reasons, "nickname")

		_, err = f.profiles.Get(ctx, "user-3")
		require.ErrorIs(t, err, service.ErrProfileNotFound, "nothing is written on failure")
	})

	t.Run("custom claims are rejected", func(t *testing.T) {
		_, err := f.profiles.Put(ctx, "user-4", claims.Set{"favourite_colour": "green"})
		require.Error(t, err)
		require.Contains(t, claims.Reasons(err), "favourite_colour")
	})
}

func TestProfileCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.profiles.Create(ctx, claims.Set{"given_name": "Grace"})
	require.NoError(t, err)

	id, err := idx.Parse(p.Subject)
	require.NoError(t, err)
	require.Equal(t, fixedNow.UnixMilli(), id.Time().UnixMilli())
	require.Equal(t, p.Subject, p.Claims.Subject())

	stored, err := f.profiles.Get(ctx, p.Subject)
	require.NoError(t, err)
	require.Equal(t, "Grace", stored.Claims["given_name"])

	t.Run("subject in body is refused", func(t *testing.T) {
		_, err := f.profiles.Create(ctx, claims.Set{"sub": "chosen"})
		require.ErrorIs(t, err, service.ErrSubjectAssigned)
	})

	t.Run("subjects are unique", func(t *testing.T) {
		other, err := f.profiles.Create(ctx, nil)
		require.NoError(t, err)
		require.NotEqual(t, p.Subject, other.Subject)
	})
}

func TestProfileDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.profiles.Put(ctx, "user-1", claims.Set{"email": "ada@example.com"})
	require.NoError(t, err)
	_, err = f.profiles.Get(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, f.profiles.Delete(ctx, "user-1"))
	require.False(t, f.redis.Exists(cachePrefix+"user-1"))

	_, err = f.profiles.Get(ctx, "user-1")
	require.ErrorIs(t, err, service.ErrProfileNotFound)

	require.ErrorIs(t, f.profiles.Delete(ctx, "user-1"), service.ErrProfileNotFound)
}

func TestProfileGetSurvivesCacheOutage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.profiles.Put(ctx, "user-1", claims.Set{"email": "ada@example.com"})
	require.NoError(t, err)

	f.redis.Close()

	got, err := f.profiles.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", got.Claims["email"])
}

func TestProfileWithoutCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.profiles.Cache = nil

	_, err := f.profiles.Put(ctx, "user-1", claims.Set{"locale": "en-AU"})
	require.NoError(t, err)

	got, err := f.profiles.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "en-AU", got.Claims["locale"])
	require.ErrorIs(t, f.profiles.Delete(ctx, "nobody"), service.ErrProfileNotFound)
}
