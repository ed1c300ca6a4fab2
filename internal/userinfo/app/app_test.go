package app_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/app"
	"github.com/aussiebroadwan/idclaims/pkg/authsdk"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func writeJWKS(t *testing.T, dir string) (string, jwtx.Signer) {
	t.Helper()
	pemKey, err := jwtx.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("app-key", pemKey)
	require.NoError(t, err)

	raw, err := json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}})
	require.NoError(t, err)
	path := filepath.Join(dir, "jwks.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path, signer
}

func TestApplicationServe(t *testing.T) {
	dir := t.TempDir()
	jwksPath, signer := writeJWKS(t, dir)
	mr := miniredis.RunT(t)

	application, err := app.New(app.Config{
		Issuer:              "https://auth.example.com",
		JWKSFile:            jwksPath,
		JWKSRefresh:         time.Hour,
		DatabaseFile:        filepath.Join(dir, "userinfo.db"),
		RedisAddr:           mr.Addr(),
		CacheTTL:            time.Minute,
		IDTokenTTL:          time.Minute,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: 5 * time.Second,
	})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx, ln) }()

	client := authsdk.NewSDKClient(baseURL)

	require.Eventually(t, func() bool {
		_, err := client.GetLiveness(context.Background())
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	ready, err := client.GetReadiness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Cache)

	tok, err := signer.Sign(jwtx.NewAccessClaims("user-1", "sid", []string{"openid", "admin:write"}, nil,
		time.Minute, "https://auth.example.com", nil, time.Now()))
	require.NoError(t, err)
	authed := client.WithToken(tok)

	_, err = authed.PutProfile(context.Background(), "user-1", map[string]any{"email": "ada@example.com"})
	require.NoError(t, err)

	info, err := authed.UserInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "user-1", info.Subject())

	resp, err := http.Get(baseURL + "/metrics")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	require.NoError(t, application.Shutdown(), "shutdown is idempotent")
}

func TestNewFailsOnUnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := app.New(app.Config{
		DatabaseFile:        filepath.Join(t.TempDir(), "userinfo.db"),
		RedisAddr:           addr,
		LogLevel:            "error",
		ShutdownGracePeriod: time.Second,
	})
	require.Error(t, err)
}
