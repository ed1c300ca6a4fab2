package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/domain"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/metrics"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/idx"
	"github.com/aussiebroadwan/idclaims/pkg/slogx"
)

// ProfileService manages the claim sets stored per subject. Cache is
// optional; when set, reads go through it and writes invalidate it.
type ProfileService struct {
	Store   store.Store
	Cache   store.ProfileCache
	IDs     *idx.Generator
	Now     func() time.Time
	Metrics *metrics.Metrics
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Millisecond)
	}
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *ProfileService) newSubject() string {
	if s.IDs != nil {
		return s.IDs.New().String()
	}
	return idx.New().String()
}

// Get returns the profile stored for sub.
func (s *ProfileService) Get(ctx context.Context, sub string) (domain.Profile, error) {
	if s.Cache != nil {
		p, err := s.Cache.Get(ctx, sub)
		switch {
		case err == nil:
			s.Metrics.CacheLookup("hit")
			return p, nil
		case errors.Is(err, store.ErrNotFound):
			s.Metrics.CacheLookup("miss")
		default:
			s.Metrics.CacheLookup("error")
			slogx.FromContext(ctx).Warn("profile cache read failed", "sub", sub, "err", err)
		}
	}

	p, err := s.Store.Profiles().GetProfile(ctx, sub)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service: get profile: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, p); err != nil {
			slogx.FromContext(ctx).Warn("profile cache write failed", "sub", sub, "err", err)
		}
	}
	return p, nil
}

// Put replaces the claims stored for sub, creating the profile if needed.
// A sub inside set must match. updated_at is stamped with the current time.
// Every claim is validated and all failures are returned together.
func (s *ProfileService) Put(ctx context.Context, sub string, set claims.Set) (domain.Profile, error) {
	if err := claims.Subject.Validate(sub); err != nil {
		return domain.Profile{}, err
	}
	if v, ok := set[claims.Subject.Key()]; ok && v != sub {
		return domain.Profile{}, ErrSubjectMismatch
	}

	now := s.now()
	stamped := stamp(set, sub, now)
	if err := claims.ValidateSet(stamped); err != nil {
		s.recordRejections(err)
		return domain.Profile{}, err
	}

	var out domain.Profile
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p := domain.Profile{Subject: sub, Claims: stamped, CreatedAt: now, UpdatedAt: now}
		if err := tx.Profiles().UpsertProfile(ctx, p); err != nil {
			return err
		}
		stored, err := tx.Profiles().GetProfile(ctx, sub)
		if err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service: put profile: %w", err)
	}

	s.invalidate(ctx, sub)
	return out, nil
}

// Create stores set under a newly generated subject. set must not carry
// its own sub.
func (s *ProfileService) Create(ctx context.Context, set claims.Set) (domain.Profile, error) {
	if _, ok := set[claims.Subject.Key()]; ok {
		return domain.Profile{}, ErrSubjectAssigned
	}

	now := s.now()
	sub := s.newSubject()
	stamped := stamp(set, sub, now)
	if err := claims.ValidateSet(stamped); err != nil {
		s.recordRejections(err)
		return domain.Profile{}, err
	}

	p := domain.Profile{Subject: sub, Claims: stamped, CreatedAt: now, UpdatedAt: now}
	err := s.Store.Profiles().CreateProfile(ctx, p)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Profile{}, ErrProfileExists
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service: create profile: %w", err)
	}
	return p, nil
}

// Delete removes the profile stored for sub.
func (s *ProfileService) Delete(ctx context.Context, sub string) error {
	err := s.Store.Profiles().DeleteProfile(ctx, sub)
	if errors.Is(err, store.ErrNotFound) {
		return ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("service: delete profile: %w", err)
	}
	s.invalidate(ctx, sub)
	return nil
}

func (s *ProfileService) invalidate(ctx context.Context, sub string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, sub); err != nil {
		slogx.FromContext(ctx).Warn("profile cache invalidate failed", "sub", sub, "err", err)
	}
}

func (s *ProfileService) recordRejections(err error) {
	for key := range claims.Reasons(err) {
		s.Metrics.ClaimRejected(key, "request")
	}
}

// stamp copies set with sub and updated_at filled in.
func stamp(set claims.Set, sub string, now time.Time) claims.Set {
	out := set.Clone()
	if out == nil {
		out = make(claims.Set, 2)
	}
	out[claims.Subject.Key()] = sub
	out[claims.UpdatedAt.Key()] = now.Unix()
	return out
}
