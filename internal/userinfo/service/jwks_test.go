package service_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/service"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJWKS(t *testing.T, kids ...string) []byte {
	t.Helper()
	var set jwtx.JWKS
	for _, kid := range kids {
		pemKey, err := jwtx.GenerateEd25519Key()
		require.NoError(t, err)
		signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
		require.NoError(t, err)
		set.Keys = append(set.Keys, signer.PublicJWK())
	}
	raw, err := json.Marshal(set)
	require.NoError(t, err)
	return raw
}

func writeJWKSFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jwks.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestJWKSRefreshFromURL(t *testing.T) {
	var body atomic.Value
	body.Store(newJWKS(t, "k1", "k2"))
	var fail atomic.Bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body.Load().([]byte))
	}))
	t.Cleanup(srv.Close)

	keys := jwtx.NewKeySet()
	r := service.NewJWKSRefresher(keys, srv.URL, time.Minute, discardLogger())

	require.NoError(t, r.Refresh(context.Background()))
	require.Equal(t, 2, keys.Len())
	_, err := keys.Get("k1")
	require.NoError(t, err)

	t.Run("rotation replaces keys", func(t *testing.T) {
		body.Store(newJWKS(t, "k3"))
		require.NoError(t, r.Refresh(context.Background()))
		require.Equal(t, 1, keys.Len())
		_, err := keys.Get("k1")
		require.ErrorIs(t, err, jwtx.ErrNoKey)
	})

	t.Run("failure keeps current keys", func(t *testing.T) {
		fail.Store(true)
		require.Error(t, r.Refresh(context.Background()))
		require.Equal(t, 1, keys.Len())
		_, err := keys.Get("k3")
		require.NoError(t, err)
	})
}

func TestJWKSRefreshFromFile(t *testing.T) {
	path := writeJWKSFile(t, newJWKS(t, "file-key"))

	for _, source := range []string{path, "file://" + path} {
		keys := jwtx.NewKeySet()
		r := service.NewJWKSRefresher(keys, source, time.Minute, discardLogger())
		require.NoError(t, r.Refresh(context.Background()), source)
		require.True(t, keys.IsReady())
	}
}

func TestJWKSRefreshErrors(t *testing.T) {
	keys := jwtx.NewKeySet()

	r := service.NewJWKSRefresher(keys, "", time.Minute, discardLogger())
	require.ErrorIs(t, r.Refresh(context.Background()), service.ErrJWKSSourceMissing)

	r.Source = writeJWKSFile(t, []byte("not json"))
	require.Error(t, r.Refresh(context.Background()))

	r.Source = writeJWKSFile(t, []byte(`{"keys":[]}`))
	require.ErrorIs(t, r.Refresh(context.Background()), jwtx.ErrNoKey)

	require.False(t, keys.IsReady())
}

func TestJWKSRefresherStartStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	keys := jwtx.NewKeySet()
	r := service.NewJWKSRefresher(keys, writeJWKSFile(t, newJWKS(t, "bg")), time.Hour, discardLogger())

	r.Start()
	r.Start()
	require.Eventually(t, keys.IsReady, time.Second, 10*time.Millisecond, "initial load happens on start")

	r.Stop()
	r.Stop()
}

func TestJWKSRefresherRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	keys := jwtx.NewKeySet()
	r := service.NewJWKSRefresher(keys, writeJWKSFile(t, newJWKS(t, "run")), 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, keys.IsReady, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
