package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-course-tracker/internal/model"
)

type stubValidator struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

type stubUserChecker struct {
	exists bool
	err    error
}

func (s *stubUserChecker) UserExists(context.Context, int64) (bool, error) {
	return s.exists, s.err
}

func validClaims() *model.AuthClaims {
	return &model.AuthClaims{UserID: 7, Username: "alice", Email: "a@x.com"}
}

func bodyMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var parsed model.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return parsed.Message
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(&stubValidator{claims: validClaims()}, &stubUserChecker{exists: true})

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided.", bodyMessage(t, rec))
}

func TestRequireAuthRejectsNonBearerScheme(t *testing.T) {
	mw := NewAuthMiddleware(&stubValidator{claims: validClaims()}, &stubUserChecker{exists: true})

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(&stubValidator{err: model.ErrInvalidToken}, &stubUserChecker{exists: true})

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Bearer expired-or-forged")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid or expired token", bodyMessage(t, rec))
}

func TestRequireAuthAttachesClaims(t *testing.T) {
	mw := NewAuthMiddleware(&stubValidator{claims: validClaims()}, &stubUserChecker{exists: true})

	var seen *model.AuthClaims
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		seen = claims
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.UserID)
	assert.Equal(t, "alice", seen.Username)
}

func TestRequireUserWithoutClaims(t *testing.T) {
	mw := NewAuthMiddleware(&stubValidator{claims: validClaims()}, &stubUserChecker{exists: true})

	handler := mw.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without claims in context")
	}))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserRejectsVanishedAccount(t *testing.T) {
	mw := NewAuthMiddleware(&stubValidator{claims: validClaims()}, &stubUserChecker{exists: false})

	gate := mw.RequireAuth(mw.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a deleted account")
	})))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Bearer structurally-valid")
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User no longer exists", bodyMessage(t, rec))
}

func TestRequireUserPassesThrough(t *testing.T) {
	mw := NewAuthMiddleware(&stubValidator{claims: validClaims()}, &stubUserChecker{exists: true})

	gate := mw.RequireAuth(mw.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
