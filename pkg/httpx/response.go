package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// WriteJSON writes v as a JSON response with the given status code and
// no-store caching headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// JSON writes v to the response side of the exchange.
func (c *RequestContext) JSON(code int, v any) {
	WriteJSON(c.resp, code, v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// UserInfo responses carry personal data and must never be cached.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON decodes the request body into v. Numbers are kept as
// json.Number so integer claims survive without float conversion.
func (c *RequestContext) DecodeJSON(v any) error {
	dec := json.NewDecoder(c.req.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

// ParseSpaceDelimitedFields splits a space-delimited string like an OAuth2
// scope parameter. Returns nil for blank input.
func ParseSpaceDelimitedFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
