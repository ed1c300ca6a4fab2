package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/idclaims/pkg/httpx"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

type authFixture struct {
	signer   jwtx.Signer
	verifier jwtx.Verifier
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	pemKey, err := jwtx.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)

	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddSigner(signer))

	return authFixture{
		signer:   signer,
		verifier: jwtx.NewCommonEdDSA(ks, jwtx.VerifyOptions{Issuer: "https://auth.example.com"}),
	}
}

func (f authFixture) token(t *testing.T, sub string, scopes ...string) string {
	t.Helper()
	c := jwtx.NewAccessClaims(sub, "sid", scopes, nil, time.Minute, "https://auth.example.com", nil, time.Now())
	tok, err := f.signer.Sign(c)
	require.NoError(t, err)
	return tok
}

func TestAuthnMiddleware(t *testing.T) {
	f := newAuthFixture(t)

	var gotSub string
	var gotScopes []string
	h := httpx.AuthnMiddleware(f.verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub, _ = httpx.SubjectFromContext(r.Context())
		gotScopes = httpx.ScopesFromContext(r.Context())
		claims, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "sid", claims.SID)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer "+f.token(t, "user-1", "openid", "email"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "user-1", gotSub)
		require.Equal(t, []string{"openid", "email"}, gotScopes)
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic dXNlcjpwYXNz",
		"empty token":    "Bearer   ",
		"invalid token":  "Bearer abc.def.ghi",
		"no subject":     "Bearer " + f.token(t, ""),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), `Bearer error="invalid_token"`))
		})
	}
}

func TestScopeMiddleware(t *testing.T) {
	f := newAuthFixture(t)

	serve := func(mw httpx.Middleware, scopes ...string) *httptest.ResponseRecorder {
		h := httpx.Chain(okHandler(), httpx.AuthnMiddleware(f.verifier), mw)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+f.token(t, "user-1", scopes...))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("any scope", func(t *testing.T) {
		require.Equal(t, http.StatusOK, serve(httpx.RequireAnyScope("admin:read", "admin:write"), "admin:write").Code)

		rec := serve(httpx.RequireAnyScope("admin:read"), "openid")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), `scope="admin:read"`)
	})

	t.Run("all scopes", func(t *testing.T) {
		require.Equal(t, http.StatusOK, serve(httpx.RequireAllScopes("openid", "email"), "email", "openid").Code)
		require.Equal(t, http.StatusForbidden, serve(httpx.RequireAllScopes("openid", "email"), "openid").Code)
	})
}
