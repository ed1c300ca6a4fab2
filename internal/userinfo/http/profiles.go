package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/domain"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/service"
	"github.com/aussiebroadwan/idclaims/pkg/authsdk"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/httpx"
	"github.com/aussiebroadwan/idclaims/pkg/slogx"
)

type ProfilesHandler struct {
	ProfileService *service.ProfileService
}

// Get godoc
//
//	@Summary		Get a profile
//	@Description	Returns the claims stored for a subject. Requires 'admin:read'.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Produce		json
//	@Param			sub	path		string	true	"Subject"
//	@Success		200	{object}	authsdk.ProfileResponse
//	@Failure		404	{object}	authsdk.OAuth2Error	"No profile for subject"
//	@Router			/v1/profiles/{sub} [get].
func (h *ProfilesHandler) Get(c *httpx.RequestContext) {
	p, err := h.ProfileService.Get(c.Context(), c.Request().PathValue("sub"))
	if err != nil {
		writeProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(p))
}

// Put godoc
//
//	@Summary		Replace a profile
//	@Description	Stores the claim set for a subject, creating the profile if needed.
//	@Description	Only standard claims are accepted; updated_at is set by the service. Requires 'admin:write'.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			sub		path		string	true	"Subject"
//	@Param			claims	body		object	true	"Claim set"
//	@Success		200		{object}	authsdk.ProfileResponse
//	@Failure		400		{object}	authsdk.OAuth2Error	"Invalid claims"
//	@Router			/v1/profiles/{sub} [put].
func (h *ProfilesHandler) Put(c *httpx.RequestContext) {
	var set claims.Set
	if err := decodeBody(c, &set); err != nil {
		authsdk.ErrInvalidBody.WriteError(c.Response())
		return
	}

	p, err := h.ProfileService.Put(c.Context(), c.Request().PathValue("sub"), set)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(p))
}

// Create godoc
//
//	@Summary		Create a profile
//	@Description	Stores a claim set under a newly generated subject. Requires 'admin:write'.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			claims	body		object	true	"Claim set without sub"
//	@Success		201		{object}	authsdk.ProfileResponse
//	@Failure		400		{object}	authsdk.OAuth2Error	"Invalid claims"
//	@Router			/v1/profiles [post].
func (h *ProfilesHandler) Create(c *httpx.RequestContext) {
	var set claims.Set
	if err := decodeBody(c, &set); err != nil {
		authsdk.ErrInvalidBody.WriteError(c.Response())
		return
	}

	p, err := h.ProfileService.Create(c.Context(), set)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	c.Response().Header().Set("Location", "/v1/profiles/"+p.Subject)
	c.JSON(http.StatusCreated, toProfileResponse(p))
}

// Delete godoc
//
//	@Summary		Delete a profile
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Param			sub	path	string	true	"Subject"
//	@Success		204
//	@Failure		404	{object}	authsdk.OAuth2Error	"No profile for subject"
//	@Router			/v1/profiles/{sub} [delete].
func (h *ProfilesHandler) Delete(c *httpx.RequestContext) {
	if err := h.ProfileService.Delete(c.Context(), c.Request().PathValue("sub")); err != nil {
		writeProfileError(c, err)
		return
	}
	c.Response().WriteHeader(http.StatusNoContent)
}

func writeProfileError(c *httpx.RequestContext, err error) {
	w := c.Response()
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		authsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrProfileExists):
		authsdk.NewOAuth2Error(http.StatusConflict, authsdk.ErrorCodeInvalidRequest,
			"profile already exists").WriteError(w)
	case errors.Is(err, service.ErrSubjectMismatch), errors.Is(err, service.ErrSubjectAssigned):
		authsdk.NewOAuth2Error(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest,
			err.Error()).WriteError(w)
	case errors.Is(err, claims.ErrInvalid):
		authsdk.NewClaimsError(err).WriteError(w)
	default:
		slogx.FromContext(c.Context()).Error("profile operation failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}

func toProfileResponse(p domain.Profile) authsdk.ProfileResponse {
	return authsdk.ProfileResponse{
		Subject:   p.Subject,
		Claims:    p.Claims,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
