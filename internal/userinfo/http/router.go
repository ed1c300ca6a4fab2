package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/metrics"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/service"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store"
	"github.com/aussiebroadwan/idclaims/pkg/authsdk"
	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/httpx"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
	"github.com/aussiebroadwan/idclaims/pkg/slogx"

	_ "github.com/aussiebroadwan/idclaims/api/userinfo" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	ScopeAdminRead  = "admin:read"
	ScopeAdminWrite = "admin:write"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store           store.Store
	Cache           store.ProfileCache // Optional: nil when Redis is not configured
	ProfileService  *service.ProfileService
	UserInfoService *service.UserInfoService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      m,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClaims()
	r.registerUserInfo()
	r.registerProfiles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			idclaims UserInfo Service API
//	@version		0.1.0
//	@description	OpenID Connect standard claim catalog, claim validation and UserInfo endpoint.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs verified against the issuer's JWKS.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/idclaims
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, counted in metrics as route.
func (r *Router) handle(pattern, route string, h http.Handler, mws ...httpx.Middleware) {
	mws = append([]httpx.Middleware{r.metrics.Instrument(route)}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, mws...))
}

// secured is the middleware stack for bearer-protected routes.
func (r *Router) secured(limit httpx.RateLimitConfig, scopes ...string) []httpx.Middleware {
	return []httpx.Middleware{
		r.requireKeys,
		httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/aud/exp)
		httpx.RequireAnyScope(scopes...),  // enforce scopes
		httpx.RateLimitBySubject(limit),
	}
}

// requireKeys answers 503 until the first JWKS load has succeeded, so
// callers are not told their token is invalid while we cannot check it.
func (r *Router) requireKeys(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.keys.IsReady() {
			authsdk.ErrUnavailable.WriteError(w)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (r *Router) registerClaims() {
	h := &ClaimsHandler{Metrics: r.metrics}

	// Public catalog - high limit by IP
	r.handle("GET /v1/claims", "claims_list", httpx.ContextHandler(h.List),
		httpx.RateLimitByIP(httpx.PublicLimit))
	r.handle("GET /v1/claims/{key}", "claims_get", httpx.ContextHandler(h.Get),
		httpx.RateLimitByIP(httpx.PublicLimit))
	r.handle("POST /v1/claims/validate", "claims_validate", httpx.ContextHandler(h.Validate),
		httpx.RateLimitByIP(httpx.LenientLimit))
}

func (r *Router) registerUserInfo() {
	h := &UserInfoHandler{UserInfoService: r.UserInfoService}

	// UserInfo must answer both GET and POST (OIDC Core 5.3.1)
	userinfo := r.secured(httpx.LenientLimit, claims.ScopeOpenID)
	r.handle("GET /v1/userinfo", "userinfo", httpx.ContextHandler(h.UserInfo), userinfo...)
	r.handle("POST /v1/userinfo", "userinfo", httpx.ContextHandler(h.UserInfo), userinfo...)

	r.handle("POST /v1/idtoken/claims", "idtoken_claims", httpx.ContextHandler(h.IDTokenClaims),
		r.secured(httpx.ModerateLimit, ScopeAdminRead, ScopeAdminWrite)...)
}

func (r *Router) registerProfiles() {
	h := &ProfilesHandler{ProfileService: r.ProfileService}

	read := r.secured(httpx.LenientLimit, ScopeAdminRead, ScopeAdminWrite)
	write := r.secured(httpx.ModerateLimit, ScopeAdminWrite)

	r.handle("GET /v1/profiles/{sub}", "profiles_get", httpx.ContextHandler(h.Get), read...)
	r.handle("PUT /v1/profiles/{sub}", "profiles_put", httpx.ContextHandler(h.Put), write...)
	r.handle("DELETE /v1/profiles/{sub}", "profiles_delete", httpx.ContextHandler(h.Delete), write...)
	r.handle("POST /v1/profiles", "profiles_create", httpx.ContextHandler(h.Create), write...)
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.handle("GET /livez", "livez", LivezHandler(r.startTime, r.buildVersion),
		httpx.RateLimitByIP(httpx.PublicLimit))
	r.handle("GET /readyz", "readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.Cache),
		httpx.RateLimitByIP(httpx.PublicLimit))

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
