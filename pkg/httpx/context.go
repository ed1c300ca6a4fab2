package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
)

// RequestContext pairs the inbound request of one exchange with its
// outbound response. The pairing is fixed at construction; the request and
// response themselves are still owned and mutated by the transport and the
// handlers that receive them. A RequestContext is never reused across
// exchanges.
type RequestContext struct {
	req  *http.Request
	resp http.ResponseWriter
	ctx  context.Context
}

// NewRequestContext binds r and w for a single exchange. Both are required;
// a nil argument is a programming error and panics immediately.
func NewRequestContext(r *http.Request, w http.ResponseWriter) *RequestContext {
	if r == nil {
		panic("httpx: NewRequestContext called with nil request")
	}
	if w == nil {
		panic("httpx: NewRequestContext called with nil response")
	}
	return &RequestContext{req: r, resp: w}
}

// Request returns the request the context was built with.
func (c *RequestContext) Request() *http.Request { return c.req }

// Response returns the response the context was built with.
func (c *RequestContext) Response() http.ResponseWriter { return c.resp }

// Context returns the context of the exchange. Under a ContextHandler it
// also carries c itself; otherwise it is Request().Context().
func (c *RequestContext) Context() context.Context {
	if c.ctx != nil {
		return c.ctx
	}
	return c.req.Context()
}

// ContextHandler is a handler written against a RequestContext.
type ContextHandler func(*RequestContext)

// ServeHTTP builds a fresh RequestContext around r and w, makes it
// reachable from rc.Context() and calls h. r is stored as passed in.
func (h ContextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rc := NewRequestContext(r, w)
	rc.ctx = WithRequestContext(r.Context(), rc)
	h(rc)
}

type requestContextKey struct{}

// WithRequestContext stores rc in ctx so work fanned out from a handler
// can reach both sides of the exchange.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFrom returns the RequestContext stored in ctx, if any.
func RequestContextFrom(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc, ok && rc != nil
}

type ctxKey string

const (
	CtxKeySubject ctxKey = "subject"
	CtxKeyScopes  ctxKey = "scopes"
	CtxKeyClaims  ctxKey = "claims"
)

// SubjectFromContext returns the authenticated subject set by
// AuthnMiddleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(CtxKeySubject).(string)
	return sub, ok && sub != ""
}

// ScopesFromContext returns the scopes of the verified access token.
func ScopesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}

// ClaimsFromContext returns the full verified access-token claims.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyScopes, c.Scopes)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
