package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/metrics"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/service"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store/cache"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store/drivers/sqlite"
	"github.com/aussiebroadwan/idclaims/pkg/idx"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    *sqlite.Store
	redis    *miniredis.Miniredis
	metrics  *metrics.Metrics
	profiles *service.ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	mr := miniredis.RunT(t)
	c, err := cache.NewRedis(context.Background(), cache.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	now := func() time.Time { return fixedNow }
	m := metrics.New()

	return &fixture{
		store:   st,
		redis:   mr,
		metrics: m,
		profiles: &service.ProfileService{
			Store:   st,
			Cache:   c,
			IDs:     idx.NewGenerator(now, nil),
			Now:     now,
			Metrics: m,
		},
	}
}
