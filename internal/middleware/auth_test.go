package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duyng2512/devmeet/internal/auth/token"
)

func newTestMiddleware(t *testing.T) (*AuthMiddleware, *token.Service) {
	t.Helper()
	tokens := token.NewService("0123456789abcdef0123456789abcdef", time.Hour)
	return NewAuthMiddleware(tokens), tokens
}

func TestRequireAuthMissingToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	called := false
	handler := mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "downstream handler must not run")
}

func TestRequireAuthInvalidToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	called := false
	handler := mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAuthValidToken(t *testing.T) {
	mw, tokens := newTestMiddleware(t)

	raw, err := tokens.Issue("identity-42")
	require.NoError(t, err)

	var gotID string
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		gotID = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "identity-42", gotID)
}

func TestRequireAuthLegacyHeader(t *testing.T) {
	mw, tokens := newTestMiddleware(t)

	raw, err := tokens.Issue("identity-42")
	require.NoError(t, err)

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := IdentityFromContext(r.Context())
		assert.True(t, ok)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-auth-token", raw)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
