package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"go-course-tracker/internal/model"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*model.AuthClaims, error)
}

type userChecker interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	validator tokenValidator
	users     userChecker
}

func NewAuthMiddleware(validator tokenValidator, users userChecker) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, users: users}
}

// RequireAuth is the gate on every protected route: no bearer token short-
// circuits with 401, a token that fails verification with 403. On success the
// decoded claims ride the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		token := strings.TrimSpace(header[7:])
		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			writeAuthError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser re-checks that the token subject still exists. Runs after
// RequireAuth on resource-owning routes only; a structurally valid token for
// a deleted account is rejected here.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		exists, err := m.users.UserExists(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("user liveness check failed", "error", err, "user_id", claims.UserID)
			writeAuthError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if !exists {
			writeAuthError(w, http.StatusUnauthorized, "User no longer exists")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.MessageResponse{Message: message})
}
