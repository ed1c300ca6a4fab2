//go:build e2e

package userinfo_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/idclaims/pkg/authsdk"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for userinfo service end-to-end
 * tests: image build, container setup and token minting.
 */

const (
	testImageName = "idclaims-userinfo-test:latest"

	testIssuer   = "idclaims-e2e"
	testAudience = "userinfo"
	testKID      = "e2e-key-001"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building UserInfo Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up UserInfo Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/userinfo/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// issuer mints access tokens trusted by the container.
type issuer struct {
	signer jwtx.Signer
}

func (i issuer) token(t *testing.T, sub string, scopes ...string) string {
	t.Helper()
	c := jwtx.NewAccessClaims(sub, "e2e-session", scopes, []string{"pwd"},
		5*time.Minute, testIssuer, []string{testAudience}, time.Now())
	tok, err := i.signer.Sign(c)
	require.NoError(t, err)
	return tok
}

// setupUserInfoContainer starts the service with a freshly generated JWKS
// mounted as a file and returns an SDK client plus a token issuer.
func setupUserInfoContainer(t *testing.T, extraEnv map[string]string) (*authsdk.SDKClient, issuer) {
	t.Helper()
	ctx := context.Background()

	pemKey, err := jwtx.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(testKID, pemKey)
	require.NoError(t, err)

	raw, err := json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}})
	require.NoError(t, err)
	jwksPath := filepath.Join(t.TempDir(), "jwks.json")
	require.NoError(t, os.WriteFile(jwksPath, raw, 0o644))

	env := map[string]string{
		"USERINFO_ISSUER":    testIssuer,
		"USERINFO_AUDIENCE":  testAudience,
		"USERINFO_JWKS_FILE": "/etc/userinfo/jwks.json",
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		// Tests make many rapid requests from one subject
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		Files: []testcontainers.ContainerFile{{
			HostFilePath:      jwksPath,
			ContainerFilePath: "/etc/userinfo/jwks.json",
			FileMode:          0o644,
		}},
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return authsdk.NewSDKClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port())), issuer{signer: signer}
}
