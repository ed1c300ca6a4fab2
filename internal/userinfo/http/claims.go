package http

import (
	"net/http"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/metrics"
	"github.com/aussiebroadwan/idclaims/pkg/authsdk"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/httpx"
)

type ClaimsHandler struct {
	Metrics *metrics.Metrics
}

// List godoc
//
//	@Summary		List standard claims
//	@Description	Returns every OpenID Connect standard claim in catalog order.
//	@Tags			Claims
//	@Produce		json
//	@Success		200	{object}	authsdk.ClaimCatalog
//	@Router			/v1/claims [get].
func (h *ClaimsHandler) List(c *httpx.RequestContext) {
	defs := claims.Definitions()
	out := authsdk.ClaimCatalog{Claims: make([]authsdk.ClaimDefinition, len(defs))}
	for i, d := range defs {
		out.Claims[i] = authsdk.NewClaimDefinition(d)
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
//
//	@Summary		Get a standard claim
//	@Description	Returns the definition of one standard claim. Keys are case-sensitive.
//	@Tags			Claims
//	@Produce		json
//	@Param			key	path		string	true	"Claim name, e.g. email"
//	@Success		200	{object}	authsdk.ClaimDefinition
//	@Failure		404	{object}	authsdk.OAuth2Error	"Not a standard claim"
//	@Router			/v1/claims/{key} [get].
func (h *ClaimsHandler) Get(c *httpx.RequestContext) {
	key := c.Request().PathValue("key")
	d, err := claims.Lookup(key)
	if err != nil {
		authsdk.NewOAuth2Error(http.StatusNotFound, authsdk.ErrorCodeNotFound,
			"'"+key+"' is not a standard claim").WriteError(c.Response())
		return
	}
	c.JSON(http.StatusOK, authsdk.NewClaimDefinition(d))
}

// Validate godoc
//
//	@Summary		Validate a claim set
//	@Description	Checks every member of a JSON object against the standard claim rules.
//	@Description	Non-standard members are reported as unknown. Always answers 200 for a well-formed body.
//	@Tags			Claims
//	@Accept			json
//	@Produce		json
//	@Param			claims	body		object	true	"Claim set"
//	@Success		200		{object}	authsdk.ValidateClaimsResponse
//	@Failure		400		{object}	authsdk.OAuth2Error	"Body is not a JSON object"
//	@Router			/v1/claims/validate [post].
func (h *ClaimsHandler) Validate(c *httpx.RequestContext) {
	var set claims.Set
	if err := decodeBody(c, &set); err != nil || set == nil {
		authsdk.ErrInvalidBody.WriteError(c.Response())
		return
	}

	reasons := claims.Reasons(claims.ValidateSet(set))
	for key := range reasons {
		h.Metrics.ClaimRejected(key, "validate")
	}

	c.JSON(http.StatusOK, authsdk.ValidateClaimsResponse{
		Valid:  len(reasons) == 0,
		Errors: reasons,
	})
}
