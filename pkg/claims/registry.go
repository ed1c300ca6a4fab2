package claims

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Lookup for keys outside the standard catalog.
var ErrNotFound = errors.New("claims: not a standard claim")

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// registry is the process-wide catalog. It is built once during package
// initialisation and only read afterwards, so no locking is needed.
var registry = newRegistry(
	Address,
	BirthDate,
	EmailAddress,
	EmailVerified,
	GivenName,
	Gender,
	FamilyName,
	Locale,
	MiddleName,
	Name,
	Nickname,
	Picture,
	PhoneNumber,
	PhoneNumberVerified,
	PreferredUsername,
	Profile,
	Subject,
	UpdatedAt,
	Website,
	ZoneInfo,
)

type catalog struct {
	ordered []Definition
	byKey   map[string]Definition
}

func newRegistry(defs ...Definition) catalog {
	c := catalog{
		ordered: make([]Definition, 0, len(defs)),
		byKey:   make(map[string]Definition, len(defs)),
	}
	for _, d := range defs {
		if !keyPattern.MatchString(d.key) {
			panic(fmt.Sprintf("claims: invalid claim key %q", d.key))
		}
		if _, dup := c.byKey[d.key]; dup {
			panic(fmt.Sprintf("claims: duplicate claim key %q", d.key))
		}
		c.ordered = append(c.ordered, d)
		c.byKey[d.key] = d
	}
	return c
}

// Lookup returns the definition for key. Matching is exact and
// case-sensitive; callers pass the wire token as-is.
func Lookup(key string) (Definition, error) {
	d, ok := registry.byKey[key]
	if !ok {
		return Definition{}, ErrNotFound
	}
	return d, nil
}

// subject is the catalog's own copy of the sub definition. Package code
// reads it from here so reassigning the exported Subject var has no effect.
func subject() Definition { return registry.byKey["sub"] }

// IsStandard reports whether key names a standard claim.
func IsStandard(key string) bool {
	_, ok := registry.byKey[key]
	return ok
}

// AllKeys returns every standard claim key in catalog order. The slice is a
// fresh copy on each call.
func AllKeys() []string {
	keys := make([]string, len(registry.ordered))
	for i, d := range registry.ordered {
		keys[i] = d.key
	}
	return keys
}

// Definitions returns every standard claim definition in catalog order.
func Definitions() []Definition {
	out := make([]Definition, len(registry.ordered))
	copy(out, registry.ordered)
	return out
}

// Validate checks value against the format rule of the claim named key.
// Keys outside the catalog are rejected with reason "unknown claim"; callers
// that accept custom claims must check IsStandard first.
func Validate(key string, value any) error {
	d, err := Lookup(key)
	if err != nil {
		return invalid(key, "unknown claim")
	}
	return d.Validate(value)
}
