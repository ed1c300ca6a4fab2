package authsdk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/idclaims/pkg/claims"
)

// UserInfo returns the claims released to the client's access token.
func (c *SDKClient) UserInfo(ctx context.Context) (claims.Set, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/userinfo", nil, true)
	if err != nil {
		return nil, err
	}

	var set claims.Set
	if err := decodeJSON(resp, &set, http.StatusOK); err != nil {
		return nil, err
	}
	return set, nil
}

// IDTokenClaims returns the unsigned ID token payload for a subject.
// Requires admin:read.
func (c *SDKClient) IDTokenClaims(ctx context.Context, req IDTokenClaimsRequest) (map[string]any, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/idtoken/claims", req, true)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProfile returns a stored profile. Requires admin:read.
func (c *SDKClient) GetProfile(ctx context.Context, sub string) (*ProfileResponse, error) {
	return c.profileCall(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(sub), nil, http.StatusOK)
}

// PutProfile replaces the claims stored for sub. Requires admin:write.
func (c *SDKClient) PutProfile(ctx context.Context, sub string, set claims.Set) (*ProfileResponse, error) {
	return c.profileCall(ctx, http.MethodPut, "/v1/profiles/"+url.PathEscape(sub), set, http.StatusOK)
}

// CreateProfile stores set under a generated subject. Requires admin:write.
func (c *SDKClient) CreateProfile(ctx context.Context, set claims.Set) (*ProfileResponse, error) {
	return c.profileCall(ctx, http.MethodPost, "/v1/profiles", set, http.StatusCreated)
}

// DeleteProfile removes a profile. Requires admin:write.
func (c *SDKClient) DeleteProfile(ctx context.Context, sub string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/profiles/"+url.PathEscape(sub), nil, true)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *SDKClient) profileCall(ctx context.Context, method, path string, body any, want int) (*ProfileResponse, error) {
	resp, err := c.doRequest(ctx, method, path, body, true)
	if err != nil {
		return nil, err
	}

	var p ProfileResponse
	if err := decodeJSON(resp, &p, want); err != nil {
		return nil, err
	}
	return &p, nil
}
