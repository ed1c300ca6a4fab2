package sqlite_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/domain"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store/drivers/sqlite"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestProfilesCRUD(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	repo := st.Profiles()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := domain.Profile{
		Subject: "01HZX3",
		Claims: claims.Set{
			"sub":            "01HZX3",
			"email":          "ada@example.com",
			"email_verified": true,
			"updated_at":     int64(1_704_164_645),
			"address":        map[string]any{"locality": "London", "country": "UK"},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}

	require.NoError(t, repo.CreateProfile(ctx, p))
	require.ErrorIs(t, repo.CreateProfile(ctx, p), store.ErrAlreadyExists)

	got, err := repo.GetProfile(ctx, "01HZX3")
	require.NoError(t, err)
	require.Equal(t, "01HZX3", got.Subject)
	require.Equal(t, created, got.CreatedAt)
	require.Equal(t, "ada@example.com", got.Claims["email"])
	require.Equal(t, true, got.Claims["email_verified"])
	require.Equal(t, json.Number("1704164645"), got.Claims["updated_at"])
	require.NoError(t, claims.ValidateSet(got.Claims))

	t.Run("upsert keeps created_at", func(t *testing.T) {
		later := created.Add(time.Hour)
		p2 := domain.Profile{
			Subject:   "01HZX3",
			Claims:    claims.Set{"sub": "01HZX3", "name": "Ada Lovelace"},
			CreatedAt: later,
			UpdatedAt: later,
		}
		require.NoError(t, repo.UpsertProfile(ctx, p2))

		got, err := repo.GetProfile(ctx, "01HZX3")
		require.NoError(t, err)
		require.Equal(t, created, got.CreatedAt)
		require.Equal(t, later, got.UpdatedAt)
		require.Equal(t, claims.Set{"sub": "01HZX3", "name": "Ada Lovelace"}, got.Claims)
	})

	n, err := repo.CountProfiles(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, repo.DeleteProfile(ctx, "01HZX3"))
	require.ErrorIs(t, repo.DeleteProfile(ctx, "01HZX3"), store.ErrNotFound)

	_, err = repo.GetProfile(ctx, "01HZX3")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	boom := context.Canceled
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Profiles().UpsertProfile(ctx, domain.Profile{
			Subject:   "tx-user",
			Claims:    claims.Set{"sub": "tx-user"},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Profiles().GetProfile(ctx, "tx-user")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Ping(ctx))
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())
}
