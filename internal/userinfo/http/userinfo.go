package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/service"
	"github.com/aussiebroadwan/idclaims/pkg/authsdk"
	"github.com/aussiebroadwan/idclaims/pkg/httpx"
	"github.com/aussiebroadwan/idclaims/pkg/slogx"
)

type UserInfoHandler struct {
	UserInfoService *service.UserInfoService
}

// UserInfo handles the OpenID Connect UserInfo endpoint.
//
//	@Summary		Get end-user claims
//	@Description	Returns the claims of the token's subject released by the granted scopes. Requires the 'openid' scope.
//	@Tags			UserInfo
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]any		"Claim set, always including sub"
//	@Failure		401	{object}	authsdk.OAuth2Error	"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.OAuth2Error	"Missing openid scope"
//	@Failure		500	{object}	authsdk.OAuth2Error	"Internal server error"
//	@Failure		503	{object}	authsdk.OAuth2Error	"Verification keys not loaded"
//	@Router			/v1/userinfo [get]
//	@Router			/v1/userinfo [post].
func (h *UserInfoHandler) UserInfo(c *httpx.RequestContext) {
	ctx := c.Context()
	log := slogx.FromContext(ctx)

	sub, ok := httpx.SubjectFromContext(ctx)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(c.Response())
		return
	}

	set, err := h.UserInfoService.UserInfo(ctx, sub, httpx.ScopesFromContext(ctx))
	if err != nil {
		log.Error("failed to assemble userinfo", "sub", sub, "err", err)
		authsdk.ErrServerError.WriteError(c.Response())
		return
	}

	c.JSON(http.StatusOK, set)
}

// maxIDTokenTTLSeconds caps requested ID token lifetimes at one day.
const maxIDTokenTTLSeconds = 24 * 60 * 60

// IDTokenClaims godoc
//
//	@Summary		Build ID token claims
//	@Description	Returns the unsigned ID token payload for a subject, for an issuer that signs it. Requires 'admin:read'.
//	@Tags			UserInfo
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.IDTokenClaimsRequest	true	"Subject, scopes and audience"
//	@Success		200		{object}	map[string]any					"ID token payload"
//	@Failure		400		{object}	authsdk.OAuth2Error				"Malformed request"
//	@Failure		401		{object}	authsdk.OAuth2Error				"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.OAuth2Error				"Missing admin scope"
//	@Failure		500		{object}	authsdk.OAuth2Error				"Internal server error"
//	@Router			/v1/idtoken/claims [post].
func (h *UserInfoHandler) IDTokenClaims(c *httpx.RequestContext) {
	ctx := c.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.IDTokenClaimsRequest
	if err := decodeBody(c, &req); err != nil {
		authsdk.ErrInvalidBody.WriteError(c.Response())
		return
	}
	if req.Subject == "" {
		authsdk.NewOAuth2Error(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest,
			"sub is required").WriteError(c.Response())
		return
	}
	if req.TTLSeconds < 0 || req.TTLSeconds > maxIDTokenTTLSeconds {
		authsdk.NewOAuth2Error(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest,
			"ttl_seconds must be between 0 and "+strconv.Itoa(maxIDTokenTTLSeconds)).WriteError(c.Response())
		return
	}

	tok, err := h.UserInfoService.IDTokenClaims(ctx,
		req.Subject,
		httpx.ParseSpaceDelimitedFields(req.Scope),
		req.Audience,
		req.Nonce,
		time.Duration(req.TTLSeconds)*time.Second,
	)
	switch {
	case errors.Is(err, service.ErrMissingAudience):
		authsdk.NewOAuth2Error(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest,
			"aud is required").WriteError(c.Response())
		return
	case err != nil:
		log.Error("failed to build id token claims", "sub", req.Subject, "err", err)
		authsdk.ErrServerError.WriteError(c.Response())
		return
	}

	c.JSON(http.StatusOK, tok)
}
