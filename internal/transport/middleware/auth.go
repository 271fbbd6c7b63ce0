package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/transport/respond"
	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

type tokenValidator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// Auth resolves a bearer access token into the request context. Requests
// without an Authorization header pass through anonymously. A header that
// is not a non-empty bearer token, or a bad token, is rejected.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, present := extractBearerToken(r)
			if !present {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			if token == "" {
				respond.Error(w, http.StatusUnauthorized, respond.CodeTokenInvalid, "malformed authorization header")
				return
			}
			claims, err := validator.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					respond.Error(w, http.StatusUnauthorized, respond.CodeTokenExpired, "access token expired")
					return
				}
				respond.Error(w, http.StatusUnauthorized, respond.CodeTokenInvalid, "invalid access token")
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), claims.UserID)
			ctx = ctxutil.WithUserRole(ctx, claims.Role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			respond.Error(w, http.StatusUnauthorized, respond.CodeNotAuthenticated, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractBearerToken returns the bearer token and whether an Authorization
// header was sent at all. The token is empty when the header is malformed.
func extractBearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}
