package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/newsroom-backend/internal/transport/respond"
	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

// Recovery turns a handler panic into a 500 INTERNAL envelope and logs the
// panic value with its stack. http.ErrAbortHandler is re-raised so the
// server can drop the connection.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("error", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)
				respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
