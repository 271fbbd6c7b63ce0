package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/heartmarshall/newsroom-backend/internal/config"
	"github.com/heartmarshall/newsroom-backend/internal/scheduler"
	"github.com/heartmarshall/newsroom-backend/internal/transport/dataloader"
	"github.com/heartmarshall/newsroom-backend/internal/transport/rest"
)

// autoArchiveTimeout bounds a single scheduled auto-archive run.
const autoArchiveTimeout = 5 * time.Minute

// Run is the server entry point. It wires configuration, storage, services
// and the HTTP API, then serves until ctx is cancelled and shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	proxies, err := cfg.Server.ParseTrustedProxies()
	if err != nil {
		return fmt.Errorf("config: server: %w", err)
	}

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      newRouter(cfg, proxies, logger, c),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sched := scheduler.New(logger, c.Articles, cfg.Articles.AutoArchiveSpec, cfg.Articles.AutoArchiveAfter, autoArchiveTimeout)
	if err := sched.Start(); err != nil {
		_ = c.Close(context.Background())
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	sched.Stop(shutdownCtx)
	if err := c.Close(shutdownCtx); err != nil {
		logger.Error("release resources", slog.String("error", err.Error()))
	}

	logger.Info("application stopped")
	return runErr
}

func newRouter(cfg *config.Config, proxies []netip.Prefix, logger *slog.Logger, c *Container) http.Handler {
	optional := map[string]rest.Pinger{}
	if c.Redis != nil {
		optional["redis"] = rest.PingFunc(func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		})
	}

	return rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(c.Pool, optional, Version),
		Auth:     rest.NewAuthHandler(c.Auth, c.Users, logger),
		Articles: rest.NewArticleHandler(c.Articles, c.Likes, logger),
		Domains:  rest.NewDomainHandler(c.Domains, logger),
		Users:    rest.NewUserHandler(c.Users, logger),
		Audit:    rest.NewAuditHandler(c.Audit, logger),
	}, rest.RouterDeps{
		Logger:         logger,
		TrustedProxies: proxies,
		CORS:           cfg.CORS,
		RequestTimeout: cfg.Server.RequestTimeout,
		Tokens:         c.Auth,
		LikeLimiter:    c.LikeLimiter,
		Loaders:        &dataloader.Repos{Domain: c.DomainRepo, User: c.UserRepo},
	})
}
