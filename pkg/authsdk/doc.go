/*
Package authsdk is the wire contract and Go client for the claims service.

# Errors

Every non-2xx response carries an OAuth2-style body:

	{"error": "invalid_claims", "error_description": "...", "details": {"email": "must contain exactly one @"}}

The server writes these with OAuth2Error.WriteError and the client returns
them as *OAuth2Error, so both sides compare with errors.Is against the
predefined values:

	_, err := client.GetClaim(ctx, "favourite_colour")
	if errors.Is(err, authsdk.ErrNotFound) {
		// not a standard claim
	}

# Client

Public endpoints need no token:

	client := authsdk.NewSDKClient("https://userinfo.example.com")
	catalog, err := client.ListClaims(ctx)
	res, err := client.ValidateClaims(ctx, claims.Set{"email": "ada@example.com"})

Authenticated endpoints use the bearer token set with WithToken:

	userinfo, err := client.WithToken(accessToken).UserInfo(ctx)

Profile management and ID token claim assembly require the admin:read and
admin:write scopes.

The client is safe for concurrent use as long as its fields are not
modified after construction.
*/
package authsdk
