/*
Package claims is the catalog of OpenID Connect standard claims and the
rules their values must follow.

# Catalog

Every standard claim is a Definition carrying its wire key, value kind and
the scope that releases it. The catalog is fixed at package initialisation:

	d, err := claims.Lookup("given_name")
	if errors.Is(err, claims.ErrNotFound) {
		// custom claim, handle explicitly
	}

	for _, key := range claims.AllKeys() {
		fmt.Println(key)
	}

Lookup is exact and case-sensitive. AllKeys always returns the same order.

# Validation

	err := claims.Validate("birthdate", "1992-02-29") // nil
	err = claims.Validate("locale", "english")        // *claims.InvalidError
	err = claims.Validate("favourite_colour", "blue") // reason "unknown claim"

Unknown keys never validate. Callers that accept custom claims branch on
IsStandard first.

# Assembly

Assembler releases the claims a client's scopes allow, validating each one:

	out, err := claims.Assembler{}.Assemble(profile, []string{"openid", "email"})
	for key, reason := range claims.Reasons(err) {
		log.Printf("%s: %s", key, reason)
	}
*/
package claims
