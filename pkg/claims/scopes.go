package claims

// ScopeClaims returns the standard claims released by the given scopes, in
// catalog order. sub is always included. Unrecognised scopes release
// nothing.
func ScopeClaims(scopes []string) []Definition {
	granted := make(map[string]struct{}, len(scopes)+1)
	granted[ScopeOpenID] = struct{}{}
	for _, s := range scopes {
		granted[s] = struct{}{}
	}

	out := make([]Definition, 0, len(registry.ordered))
	for _, d := range registry.ordered {
		if _, ok := granted[d.scope]; ok {
			out = append(out, d)
		}
	}
	return out
}

// ScopeFor returns the scope that releases key, or "" for non-standard keys.
func ScopeFor(key string) string {
	d, err := Lookup(key)
	if err != nil {
		return ""
	}
	return d.scope
}
