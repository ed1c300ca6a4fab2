package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it
// and expose sub-repositories so a Tx can hand out the same repos.
type Store interface {
	Profiles() Profiles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Profiles interface {
	// GetProfile returns the profile for sub or ErrNotFound.
	GetProfile(ctx context.Context, sub string) (domain.Profile, error)

	// CreateProfile inserts p, failing with ErrAlreadyExists on a taken sub.
	CreateProfile(ctx context.Context, p domain.Profile) error

	// UpsertProfile inserts p or replaces the claims of an existing row.
	// CreatedAt of an existing row is kept.
	UpsertProfile(ctx context.Context, p domain.Profile) error

	// DeleteProfile removes the profile for sub or returns ErrNotFound.
	DeleteProfile(ctx context.Context, sub string) error

	// CountProfiles returns the number of stored profiles.
	CountProfiles(ctx context.Context) (int64, error)
}

// ProfileCache is a read-through cache in front of Profiles. A miss is
// reported as ErrNotFound.
type ProfileCache interface {
	Get(ctx context.Context, sub string) (domain.Profile, error)
	Set(ctx context.Context, p domain.Profile) error
	Invalidate(ctx context.Context, sub string) error
	Ping(ctx context.Context) error
}
