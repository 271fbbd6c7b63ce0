package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/config"
	"github.com/heartmarshall/newsroom-backend/internal/transport/dataloader"
	"github.com/heartmarshall/newsroom-backend/internal/transport/middleware"
)

type tokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

type clientLimiter interface {
	Allow(key string) (bool, int)
}

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Articles *ArticleHandler
	Domains  *DomainHandler
	Users    *UserHandler
	Audit    *AuditHandler
}

// RouterDeps holds the collaborators of the middleware stack.
type RouterDeps struct {
	Logger         *slog.Logger
	TrustedProxies []netip.Prefix
	CORS           config.CORSConfig
	RequestTimeout time.Duration
	Tokens         tokenAuthenticator
	LikeLimiter    clientLimiter
	Loaders        *dataloader.Repos
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.RealIP(deps.TrustedProxies),
		middleware.RequestID(),
		middleware.ClientInfo,
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.CORS),
	))

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		if deps.RequestTimeout > 0 {
			r.Use(chimw.Timeout(deps.RequestTimeout))
		}
		r.Use(middleware.Auth(deps.Tokens))
		r.Use(dataloader.Middleware(deps.Loaders))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.With(middleware.RequireAuth).Post("/logout", h.Auth.Logout)
			r.With(middleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.Articles.ListPublic)
			r.Get("/{id}", h.Articles.Get)
			r.With(middleware.LimitByClient(deps.LikeLimiter)).Post("/{id}/like", h.Articles.Like)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Articles.Create)
				r.Put("/{id}", h.Articles.Update)
				r.Delete("/{id}", h.Articles.Delete)
				r.Post("/{id}/validate", h.Articles.Validate)
				r.Post("/{id}/archive", h.Articles.ToggleArchive)
				r.Post("/{id}/editors", h.Articles.GrantEdit)
			})
		})

		r.Route("/manage/articles", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", h.Articles.ListForActor)
			r.Get("/pending", h.Articles.ListPending)
			r.Get("/archived", h.Articles.ListArchived)
		})

		r.Route("/domains", func(r chi.Router) {
			r.Get("/", h.Domains.List)
			r.Get("/{id}", h.Domains.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Domains.Create)
				r.Put("/{id}", h.Domains.Update)
				r.Delete("/{id}", h.Domains.Delete)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", h.Users.List)
			r.Post("/", h.Users.Create)
			r.Get("/{id}", h.Users.Get)
			r.Put("/{id}", h.Users.Update)
			r.Delete("/{id}", h.Users.Delete)
		})

		r.With(middleware.RequireAuth).Get("/audit", h.Audit.List)
	})

	return r
}
