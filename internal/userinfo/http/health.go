package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/store"
	"github.com/aussiebroadwan/idclaims/pkg/authsdk"
	"github.com/aussiebroadwan/idclaims/pkg/httpx"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) httpx.ContextHandler {
	return func(c *httpx.RequestContext) {
		c.JSON(http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	The profile database and verification keys are required; a failing cache is reported but not fatal
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	cache store.ProfileCache,
) httpx.ContextHandler {
	return func(c *httpx.RequestContext) {
		ctx := c.Context()
		checks := &authsdk.HealthChecks{
			Database: "ok",
			Keys:     "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Keys = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if cache != nil {
			checks.Cache = "ok"
			if err := cache.Ping(ctx); err != nil {
				checks.Cache = "error: " + err.Error()
			}
		}

		c.JSON(statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
