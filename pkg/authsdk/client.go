package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the claims service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// AccessToken is sent as a bearer token on authenticated calls.
	AccessToken string
}

// NewSDKClient creates a new claims service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *SDKClient) WithToken(token string) *SDKClient {
	cp := *c
	cp.AccessToken = token
	return &cp
}
