package claims

import (
	"errors"
	"slices"
)

// ErrNilSet is returned by Put on a nil Set.
var ErrNilSet = errors.New("claims: put on nil set")

// Set is a claim set keyed by wire name, as it would appear in a UserInfo
// response or an ID Token payload.
type Set map[string]any

// Get returns the value stored for def, typed as T. It reports false when
// the claim is absent or holds a different type. Safe on a nil Set.
func Get[T any](s Set, def Definition) (T, bool) {
	v, ok := s[def.key]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Put validates value against def and stores it. A nil Set cannot be
// written to and returns ErrNilSet.
func (s Set) Put(def Definition, value any) error {
	if s == nil {
		return ErrNilSet
	}
	if err := def.Validate(value); err != nil {
		return err
	}
	s[def.key] = value
	return nil
}

// Subject returns the sub claim, or "" when absent.
func (s Set) Subject() string {
	sub, _ := Get[string](s, subject())
	return sub
}

// Keys returns the keys of s, standard claims first in catalog order and
// custom claims after them sorted by name.
func (s Set) Keys() []string {
	out := make([]string, 0, len(s))
	for _, d := range registry.ordered {
		if _, ok := s[d.key]; ok {
			out = append(out, d.key)
		}
	}
	var custom []string
	for k := range s {
		if !IsStandard(k) {
			custom = append(custom, k)
		}
	}
	slices.Sort(custom)
	return append(out, custom...)
}

// Clone returns a shallow copy of s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ValidateSet validates every claim in s. Keys outside the catalog are
// reported as unknown. All failures are returned together.
func ValidateSet(s Set) error {
	var errs []error
	for _, k := range s.Keys() {
		if err := Validate(k, s[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
