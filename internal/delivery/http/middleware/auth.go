package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "shmirascheduler/internal/delivery/http/helpers"
	"shmirascheduler/internal/domain"
)

type contextKey string

const personTokenKey contextKey = "personToken"

// SetPersonToken returns a context with the person token set. Used by auth middleware.
func SetPersonToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, personTokenKey, token)
}

// PersonTokenFromContext returns the authenticated person token from the context, if present.
func PersonTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(personTokenKey).(string)
	return token, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// person token in the request context. If the token is missing or invalid, it
// responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			personToken, err := verifier.Verify(r.Context(), token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetPersonToken(r.Context(), personToken))
			next(w, r)
		}
	}
}
