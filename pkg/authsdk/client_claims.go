package authsdk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/idclaims/pkg/claims"
)

// ListClaims returns the standard claim catalog in declaration order.
func (c *SDKClient) ListClaims(ctx context.Context) ([]ClaimDefinition, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/claims", nil, false)
	if err != nil {
		return nil, err
	}

	var catalog ClaimCatalog
	if err := decodeJSON(resp, &catalog, http.StatusOK); err != nil {
		return nil, err
	}
	return catalog.Claims, nil
}

// GetClaim returns one claim definition. Unknown keys give ErrNotFound.
func (c *SDKClient) GetClaim(ctx context.Context, key string) (*ClaimDefinition, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/claims/"+url.PathEscape(key), nil, false)
	if err != nil {
		return nil, err
	}

	var def ClaimDefinition
	if err := decodeJSON(resp, &def, http.StatusOK); err != nil {
		return nil, err
	}
	return &def, nil
}

// ValidateClaims asks the service to validate set.
func (c *SDKClient) ValidateClaims(ctx context.Context, set claims.Set) (*ValidateClaimsResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/claims/validate", set, false)
	if err != nil {
		return nil, err
	}

	var out ValidateClaimsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
