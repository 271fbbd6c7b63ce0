package middleware

import (
	"net/http"

	"github.com/heartmarshall/newsroom-backend/internal/transport/respond"
	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

type keyedLimiter interface {
	Allow(key string) (bool, int)
}

// LimitByClient throttles requests per client identity. ClientInfo must run
// first; requests without an identity share the remote address bucket.
func LimitByClient(limiter keyedLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ctxutil.ClientFromCtx(r.Context()).Identity
			if key == "" {
				key = clientIdentity(r)
			}

			ok, retryAfter := limiter.Allow(key)
			if !ok {
				respond.RateLimited(w, retryAfter)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
