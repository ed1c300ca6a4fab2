package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/metrics"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
)

const (
	DefaultJWKSRefreshInterval = 5 * time.Minute
	defaultJWKSFetchTimeout    = 10 * time.Second
	maxJWKSSize                = 1 << 20
)

// JWKSRefresher keeps a KeySet in step with the issuer's published keys.
// Source is an http(s) URL or a file path, optionally prefixed "file://".
type JWKSRefresher struct {
	Keys       *jwtx.KeySet
	Source     string
	HTTPClient *http.Client
	Interval   time.Duration
	Logger     *slog.Logger
	Metrics    *metrics.Metrics

	mu     sync.Mutex
	cancel context.CancelFunc
	doneCh chan struct{}
}

// NewJWKSRefresher creates a refresher. interval <= 0 defaults to five
// minutes.
func NewJWKSRefresher(keys *jwtx.KeySet, source string, interval time.Duration, logger *slog.Logger) *JWKSRefresher {
	if interval <= 0 {
		interval = DefaultJWKSRefreshInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JWKSRefresher{
		Keys:       keys,
		Source:     source,
		HTTPClient: &http.Client{Timeout: defaultJWKSFetchTimeout},
		Interval:   interval,
		Logger:     logger,
	}
}

// Refresh fetches the JWKS once and swaps it into Keys. On failure the
// current keys stay in place.
func (r *JWKSRefresher) Refresh(ctx context.Context) error {
	err := r.refresh(ctx)
	r.Metrics.JWKSRefreshed(err, r.Keys.Len())
	return err
}

func (r *JWKSRefresher) refresh(ctx context.Context) error {
	data, err := r.fetch(ctx)
	if err != nil {
		return err
	}
	jwks, err := jwtx.ParseJWKS(data)
	if err != nil {
		return fmt.Errorf("service: parse jwks: %w", err)
	}
	if err := r.Keys.ResetFromJWKS(jwks); err != nil {
		return fmt.Errorf("service: load jwks: %w", err)
	}
	return nil
}

func (r *JWKSRefresher) fetch(ctx context.Context) ([]byte, error) {
	if r.Source == "" {
		return nil, ErrJWKSSourceMissing
	}
	if !strings.HasPrefix(r.Source, "http://") && !strings.HasPrefix(r.Source, "https://") {
		data, err := os.ReadFile(strings.TrimPrefix(r.Source, "file://"))
		if err != nil {
			return nil, fmt.Errorf("service: read jwks: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("service: build jwks request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("service: fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service: fetch jwks: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSSize))
	if err != nil {
		return nil, fmt.Errorf("service: read jwks body: %w", err)
	}
	return data, nil
}

// Run refreshes on every tick until ctx is cancelled. When no keys are
// loaded yet it refreshes immediately.
func (r *JWKSRefresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	if !r.Keys.IsReady() {
		r.refreshLogged(ctx)
	}

	for {
		select {
		case <-ticker.C:
			r.refreshLogged(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (r *JWKSRefresher) refreshLogged(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.Logger.Warn("jwks refresh failed, keeping current keys", "source", r.Source, "err", err)
		return
	}
	r.Logger.Debug("jwks refreshed", "keys", r.Keys.Len())
}

// Start runs the refresher in the background until Stop is called.
func (r *JWKSRefresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.doneCh = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		_ = r.Run(ctx)
	}(r.doneCh)
	r.Logger.Info("jwks refresher started", "source", r.Source, "interval", r.Interval)
}

// Stop cancels the background worker and waits for it to exit.
func (r *JWKSRefresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.doneCh
	r.cancel, r.doneCh = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.Logger.Info("jwks refresher stopped")
}
