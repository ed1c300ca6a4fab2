package metrics

import (
	"net/http"

	"github.com/aussiebroadwan/idclaims/pkg/claims"
	"github.com/aussiebroadwan/idclaims/pkg/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "userinfo"

// UnknownClaim is the claim label for every key outside the standard
// catalog, keeping the label set bounded whatever callers send.
const UnknownClaim = "unknown"

func claimLabel(key string) string {
	if !claims.IsStandard(key) {
		return UnknownClaim
	}
	return key
}

// Metrics owns the service's collectors and the registry they live in. A
// nil *Metrics is valid and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	claimRejections *prometheus.CounterVec
	releasedClaims  *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	jwksRefreshes   *prometheus.CounterVec
	keysLoaded      prometheus.Gauge
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		claimRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claim_rejections_total",
			Help:      "Claim values rejected by validation, by claim and source.",
		}, []string{"claim", "source"}),
		releasedClaims: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "released_claims_total",
			Help:      "Claims released in UserInfo and ID token payloads.",
		}, []string{"claim"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_cache_lookups_total",
			Help:      "Profile cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		jwksRefreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jwks_refreshes_total",
			Help:      "JWKS refresh attempts by result (ok, error).",
		}, []string{"result"}),
		keysLoaded: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jwks_keys_loaded",
			Help:      "Number of verification keys currently loaded.",
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Instrument counts and times requests under a fixed route label, so path
// parameters never explode label cardinality.
func (m *Metrics) Instrument(route string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		labels := prometheus.Labels{"route": route}
		return promhttp.InstrumentHandlerDuration(
			m.requestDuration.MustCurryWith(labels),
			promhttp.InstrumentHandlerCounter(m.requestsTotal.MustCurryWith(labels), next),
		)
	}
}

// ClaimRejected records a claim that failed validation. source is where
// the value came from, e.g. "request" or "profile". Non-standard keys are
// counted under UnknownClaim.
func (m *Metrics) ClaimRejected(claim, source string) {
	if m == nil {
		return
	}
	m.claimRejections.WithLabelValues(claimLabel(claim), source).Inc()
}

// ClaimsReleased records every key of a released payload.
func (m *Metrics) ClaimsReleased(keys []string) {
	if m == nil {
		return
	}
	for _, k := range keys {
		m.releasedClaims.WithLabelValues(claimLabel(k)).Inc()
	}
}

// CacheLookup records a profile cache result: "hit", "miss" or "error".
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// JWKSRefreshed records a refresh attempt and the resulting key count.
func (m *Metrics) JWKSRefreshed(err error, keys int) {
	if m == nil {
		return
	}
	if err != nil {
		m.jwksRefreshes.WithLabelValues("error").Inc()
		return
	}
	m.jwksRefreshes.WithLabelValues("ok").Inc()
	m.keysLoaded.Set(float64(keys))
}
