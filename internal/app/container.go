package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/newsroom-backend/internal/adapter/postgres"
	articlerepo "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres/article"
	auditrepo "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres/audit"
	domainrepo "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres/domains"
	likerepo "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres/like"
	userrepo "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/newsroom-backend/internal/adapter/redis"
	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/config"
	"github.com/heartmarshall/newsroom-backend/internal/ratelimit"
	"github.com/heartmarshall/newsroom-backend/internal/service/article"
	"github.com/heartmarshall/newsroom-backend/internal/service/audit"
	authsvc "github.com/heartmarshall/newsroom-backend/internal/service/auth"
	"github.com/heartmarshall/newsroom-backend/internal/service/domains"
	"github.com/heartmarshall/newsroom-backend/internal/service/like"
	"github.com/heartmarshall/newsroom-backend/internal/service/user"
)

// loginSweepInterval is how often the in-process login limiter drops closed
// windows.
const loginSweepInterval = time.Minute

// feedStore is the public feed cache as seen by the services.
type feedStore interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, key string) ([]byte, bool, error)
	Set(ctx context.Context, gen int64, key string, value []byte) error
	Invalidate(ctx context.Context) error
}

type loginLimiter interface {
	Check(ctx context.Context, identity string) error
}

// Container owns the infrastructure and the services built on it.
type Container struct {
	Pool  *pgxpool.Pool
	Redis *goredis.Client

	UserRepo   *userrepo.Repo
	DomainRepo *domainrepo.Repo

	Tokens      *auth.TokenService
	Hasher      *auth.PasswordHasher
	LikeLimiter *ratelimit.Keyed

	Audit    *audit.Service
	Auth     *authsvc.Service
	Users    *user.Service
	Domains  *domains.Service
	Articles *article.Service
	Likes    *like.Service

	closers []func(ctx context.Context) error
}

// NewContainer connects to PostgreSQL (and Redis when configured) and wires
// every service. Callers must Close the container.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	c := &Container{Pool: pool}
	c.onClose(func(context.Context) error { pool.Close(); return nil })

	var (
		feed    feedStore
		limiter loginLimiter
	)
	if cfg.Redis.Enabled() {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			_ = c.Close(ctx)
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.Redis = client
		c.onClose(func(context.Context) error { return client.Close() })

		feed = redis.NewFeedCache(client, cfg.Redis.Prefix, cfg.Articles.FeedCacheTTL)
		limiter = redis.NewLoginLimiter(client, cfg.Redis.Prefix, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		logger.Info("redis enabled", slog.String("prefix", cfg.Redis.Prefix))
	} else {
		fw := ratelimit.NewFixedWindow(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow, loginSweepInterval)
		c.onClose(func(context.Context) error { fw.Stop(); return nil })
		limiter = fw
		logger.Info("redis disabled, using in-process login limiter and no feed cache")
	}

	txm := postgres.NewTxManager(pool, postgres.WithLockTimeout(cfg.Database.LockTimeout))
	c.UserRepo = userrepo.New(pool)
	c.DomainRepo = domainrepo.New(pool)
	articles := articlerepo.New(pool)

	c.Tokens = auth.NewTokenService(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.Issuer,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	c.Hasher = auth.NewPasswordHasher(cfg.Auth.PasswordHashCost)
	c.LikeLimiter = ratelimit.NewKeyed(cfg.Articles.LikesPerSecond, cfg.Articles.LikesBurst)

	c.Audit = audit.NewService(logger, auditrepo.New(pool), c.UserRepo)
	c.onClose(c.Audit.Close)

	c.Auth = authsvc.NewService(logger, c.UserRepo, c.Tokens, c.Hasher, limiter, c.Audit)
	c.Users = user.NewService(logger, c.UserRepo, c.Hasher, c.Audit, txm)
	c.Domains = domains.NewService(logger, c.DomainRepo, c.UserRepo, c.Audit, feed)
	c.Articles = article.NewService(logger, articles, c.UserRepo, c.DomainRepo, c.Audit, txm, feed, cfg.Articles)
	c.Likes = like.NewService(logger, likerepo.New(pool), articles, txm, feed)

	return c, nil
}

func (c *Container) onClose(fn func(ctx context.Context) error) {
	c.closers = append(c.closers, fn)
}

// Close releases resources in reverse order of acquisition. Pending audit
// writes are flushed before the pool closes.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
