package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/domain"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
)

type profilesRepo struct {
	q *queries
}

func (r *profilesRepo) GetProfile(ctx context.Context, sub string) (domain.Profile, error) {
	row, err := r.q.getProfile(ctx, sub)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return mapProfile(row)
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	row, err := profileToRow(p)
	if err != nil {
		return err
	}
	n, err := r.q.createProfile(ctx, row)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.Profile) error {
	row, err := profileToRow(p)
	if err != nil {
		return err
	}
	return r.q.upsertProfile(ctx, row)
}

func (r *profilesRepo) DeleteProfile(ctx context.Context, sub string) error {
	n, err := r.q.deleteProfile(ctx, sub)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *profilesRepo) CountProfiles(ctx context.Context) (int64, error) {
	return r.q.countProfiles(ctx)
}

func profileToRow(p domain.Profile) (profileRow, error) {
	raw, err := json.Marshal(p.Claims)
	if err != nil {
		return profileRow{}, fmt.Errorf("sqlite: encode claims: %w", err)
	}
	return profileRow{
		Sub:       p.Subject,
		Claims:    string(raw),
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}, nil
}

// mapProfile decodes the stored claims keeping numbers as json.Number, so
// integer timestamps come back exactly.
func mapProfile(row profileRow) (domain.Profile, error) {
	dec := json.NewDecoder(strings.NewReader(row.Claims))
	dec.UseNumber()

	var set claims.Set
	if err := dec.Decode(&set); err != nil {
		return domain.Profile{}, fmt.Errorf("sqlite: decode claims for %s: %w", row.Sub, err)
	}

	return domain.Profile{
		Subject:   row.Sub,
		Claims:    set,
		CreatedAt: time.UnixMilli(row.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(row.UpdatedAt).UTC(),
	}, nil
}
