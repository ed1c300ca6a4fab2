package claims

import "errors"

// ErrMissingSubject is returned when a claim set to be released has no sub.
var ErrMissingSubject = errors.New("claims: sub is required")

// Assembler builds the claim set released to a client from a source of
// end-user claims and the scopes the client was granted.
type Assembler struct {
	// AllowCustom passes non-standard claims from the source through
	// unvalidated. When false they are dropped.
	AllowCustom bool
}

// Assemble selects the claims granted by scopes from source and validates
// each one. sub is always released and must be present. On any validation
// failure no set is returned and the error joins one *InvalidError per
// offending claim.
func (a Assembler) Assemble(source Set, scopes []string) (Set, error) {
	sub := subject()
	if err := sub.Validate(source[sub.key]); err != nil {
		return nil, errors.Join(ErrMissingSubject, err)
	}

	out := make(Set)
	var errs []error
	for _, d := range ScopeClaims(scopes) {
		v, ok := source[d.key]
		if !ok {
			continue
		}
		if err := d.Validate(v); err != nil {
			errs = append(errs, err)
			continue
		}
		out[d.key] = v
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if a.AllowCustom {
		for k, v := range source {
			if !IsStandard(k) {
				out[k] = v
			}
		}
	}
	return out, nil
}
