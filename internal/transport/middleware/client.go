package middleware

import (
	"net"
	"net/http"

	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

// ClientInfo stores the caller's network identity and User-Agent in the
// context. It runs after RealIP, which only rewrites RemoteAddr for
// requests relayed by a trusted proxy.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxutil.WithClient(r.Context(), ctxutil.Client{
			Identity: clientIdentity(r),
			Agent:    r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIdentity(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
