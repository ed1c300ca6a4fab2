package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/metrics"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
)

// UserInfoService releases the claims of a subject filtered by the scopes
// granted to the calling client.
type UserInfoService struct {
	Profiles  *ProfileService
	Assembler claims.Assembler

	// Issuer is the iss of ID token claim sets.
	Issuer string
	// IDTokenTTL is the default ID token lifetime.
	IDTokenTTL time.Duration

	Now     func() time.Time
	Metrics *metrics.Metrics
}

func (s *UserInfoService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// UserInfo returns the UserInfo payload for sub. A subject with no stored
// profile is released with sub alone.
func (s *UserInfoService) UserInfo(ctx context.Context, sub string, scopes []string) (claims.Set, error) {
	source, err := s.source(ctx, sub)
	if err != nil {
		return nil, err
	}

	out, err := s.Assembler.Assemble(source, scopes)
	if err != nil {
		for key := range claims.Reasons(err) {
			s.Metrics.ClaimRejected(key, "profile")
		}
		return nil, fmt.Errorf("service: assemble claims for %q: %w", sub, err)
	}
	s.Metrics.ClaimsReleased(out.Keys())
	return out, nil
}

// IDTokenClaims builds the unsigned ID token payload for sub. ttl <= 0
// falls back to IDTokenTTL, then to jwtx.DefaultIDTokenTTL.
func (s *UserInfoService) IDTokenClaims(ctx context.Context, sub string, scopes, aud []string, nonce string, ttl time.Duration) (jwtx.IDTokenClaims, error) {
	if len(aud) == 0 {
		return jwtx.IDTokenClaims{}, ErrMissingAudience
	}
	if ttl <= 0 {
		ttl = s.IDTokenTTL
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultIDTokenTTL
	}

	set, err := s.UserInfo(ctx, sub, scopes)
	if err != nil {
		return jwtx.IDTokenClaims{}, err
	}
	return jwtx.NewIDTokenClaims(s.Issuer, aud, set, nonce, ttl, s.now()), nil
}

func (s *UserInfoService) source(ctx context.Context, sub string) (claims.Set, error) {
	p, err := s.Profiles.Get(ctx, sub)
	if errors.Is(err, ErrProfileNotFound) {
		return claims.Set{claims.Subject.Key(): sub}, nil
	}
	if err != nil {
		return nil, err
	}
	return p.Claims, nil
}
