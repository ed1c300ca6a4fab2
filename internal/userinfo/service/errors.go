package service

import "errors"

var (
	ErrProfileNotFound   = errors.New("service: profile not found")
	ErrProfileExists     = errors.New("service: profile already exists")
	ErrSubjectMismatch   = errors.New("service: sub in body does not match the addressed profile")
	ErrSubjectAssigned   = errors.New("service: sub is assigned by the service")
	ErrMissingAudience   = errors.New("service: aud is required")
	ErrJWKSSourceMissing = errors.New("service: no JWKS source configured")
)
