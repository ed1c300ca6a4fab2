package http

import (
	"net/http"

	"github.com/aussiebroadwan/idclaims/pkg/httpx"
)

const maxBodyBytes = 1 << 20

// decodeBody decodes a size-limited JSON request body into v.
func decodeBody(c *httpx.RequestContext, v any) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBodyBytes)
	return c.DecodeJSON(v)
}
