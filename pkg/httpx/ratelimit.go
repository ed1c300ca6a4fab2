package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/idclaims/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the window.
	RequestsPerWindow int
	// Window is the time window for rate limiting.
	Window time.Duration
	// Burst allows temporary bursts above the steady rate.
	Burst int
}

// Rate limit profiles. Each can be overridden through
// RATELIMIT_{NAME}_REQUESTS, RATELIMIT_{NAME}_WINDOW_SEC and
// RATELIMIT_{NAME}_BURST.
var (
	// ModerateLimit for admin profile writes.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit for authenticated reads such as UserInfo.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}

	// PublicLimit for the public catalog and health endpoints.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_{prefix}_* environment variables
// on def. Missing or non-positive values keep the default.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	if n := positiveEnvInt("RATELIMIT_" + prefix + "_REQUESTS"); n > 0 {
		cfg.RequestsPerWindow = n
	}
	if n := positiveEnvInt("RATELIMIT_" + prefix + "_WINDOW_SEC"); n > 0 {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n := positiveEnvInt("RATELIMIT_" + prefix + "_BURST"); n > 0 {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnvInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// KeyExtractor picks the bucket a request is counted against.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor uses the client IP, honouring X-Forwarded-For and
// X-Real-IP for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// SubjectKeyExtractor uses the authenticated subject, or "" when the
// request is anonymous.
func SubjectKeyExtractor(r *http.Request) string {
	sub, _ := SubjectFromContext(r.Context())
	return sub
}

// CompositeKeyExtractor joins the non-empty results of extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// idleSweepInterval is how often idle per-key limiters are dropped.
const idleSweepInterval = 5 * time.Minute

// Limiter is a set of token buckets, one per key.
type Limiter struct {
	cfg   RateLimitConfig
	limit rate.Limit

	buckets sync.Map // map[string]*rate.Limiter

	mu        sync.Mutex
	lastSweep time.Time
}

// NewLimiter builds a Limiter for cfg.
func NewLimiter(cfg RateLimitConfig) *Limiter {
	return &Limiter{
		cfg:       cfg,
		limit:     rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		lastSweep: time.Now(),
	}
}

// Allow reports whether a request for key may proceed. When it may not,
// retryAfter is how long until the next token frees up, at least a second.
func (l *Limiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	b := l.bucket(key)
	if b.Allow() {
		return true, 0
	}

	res := b.Reserve()
	delay := res.Delay()
	res.Cancel()
	return false, max(delay, time.Second)
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	if b, ok := l.buckets.Load(key); ok {
		return b.(*rate.Limiter)
	}
	b, _ := l.buckets.LoadOrStore(key, rate.NewLimiter(l.limit, l.cfg.Burst))
	l.maybeSweep()
	return b.(*rate.Limiter)
}

// maybeSweep drops buckets that have refilled completely, which means they
// have not been used recently.
func (l *Limiter) maybeSweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastSweep) < idleSweepInterval {
		return
	}
	l.lastSweep = time.Now()

	l.buckets.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(l.cfg.Burst) {
			l.buckets.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware limits requests grouped by keyExtractor. Requests
// with no key are let through and logged.
func RateLimitMiddleware(cfg RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	limiter := NewLimiter(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			ok, retryAfter := limiter.Allow(key)
			if !ok {
				secs := int(retryAfter.Seconds())
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", cfg.Window.String())

				log.Warn("rate limit exceeded", "key", key, "endpoint", r.URL.Path, "retry_after", secs)

				WriteJSON(w, http.StatusTooManyRequests, map[string]string{
					"error":             "rate_limit_exceeded",
					"error_description": "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitBySubject limits by authenticated subject plus IP. Anonymous
// callers fall back to IP alone.
func RateLimitBySubject(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":",
		SubjectKeyExtractor,
		IPKeyExtractor,
	))
}
