package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Articles ArticlesConfig `yaml:"articles"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// TrustedProxies lists the comma-separated IPs or CIDRs of reverse
	// proxies whose X-Forwarded-For is believed. Empty means the TCP peer is
	// the client.
	TrustedProxies string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
}

// ParseTrustedProxies parses TrustedProxies. A bare address becomes a
// single-host prefix.
func (c ServerConfig) ParseTrustedProxies() ([]netip.Prefix, error) {
	var out []netip.Prefix
	for entry := range strings.SplitSeq(c.TrustedProxies, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"5s"`
	LockTimeout      time.Duration `yaml:"lock_timeout"       env:"DATABASE_LOCK_TIMEOUT"       env-default:"3s"`
}

// RedisConfig holds Redis settings. An empty URL disables Redis and the
// server falls back to in-process counters and no feed cache.
type RedisConfig struct {
	URL          string        `yaml:"url"           env:"REDIS_URL"`
	Prefix       string        `yaml:"prefix"        env:"REDIS_PREFIX"        env-default:"newsroom:"`
	PoolSize     int           `yaml:"pool_size"     env:"REDIS_POOL_SIZE"     env-default:"10"`
	DialTimeout  time.Duration `yaml:"dial_timeout"  env:"REDIS_DIAL_TIMEOUT"  env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"REDIS_READ_TIMEOUT"  env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"REDIS_WRITE_TIMEOUT" env-default:"3s"`
}

// Enabled reports whether a Redis URL is configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// AuthConfig holds token, password and login throttling settings.
type AuthConfig struct {
	AccessSecret     string        `yaml:"access_secret"       env:"AUTH_ACCESS_SECRET"       env-required:"true"`
	RefreshSecret    string        `yaml:"refresh_secret"      env:"AUTH_REFRESH_SECRET"      env-required:"true"`
	Issuer           string        `yaml:"issuer"              env:"AUTH_ISSUER"              env-default:"newsroom"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"    env:"AUTH_ACCESS_TOKEN_TTL"    env-default:"1h"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"   env:"AUTH_REFRESH_TOKEN_TTL"   env-default:"168h"`
	PasswordHashCost int           `yaml:"password_hash_cost"  env:"AUTH_PASSWORD_HASH_COST"  env-default:"12"`
	LoginMaxAttempts int           `yaml:"login_max_attempts"  env:"AUTH_LOGIN_MAX_ATTEMPTS"  env-default:"5"`
	LoginWindow      time.Duration `yaml:"login_window"        env:"AUTH_LOGIN_WINDOW"        env-default:"15m"`
}

// ArticlesConfig holds article lifecycle settings.
type ArticlesConfig struct {
	// RevalidateOnEdit sends an edited article back to review when the editor
	// is not a moderator of its domain.
	RevalidateOnEdit bool          `yaml:"revalidate_on_edit" env:"ARTICLES_REVALIDATE_ON_EDIT" env-default:"false"`
	AutoArchiveAfter time.Duration `yaml:"auto_archive_after" env:"ARTICLES_AUTO_ARCHIVE_AFTER" env-default:"720h"`
	AutoArchiveSpec  string        `yaml:"auto_archive_spec"  env:"ARTICLES_AUTO_ARCHIVE_SPEC"  env-default:"0 0 * * *"`
	FeedCacheTTL     time.Duration `yaml:"feed_cache_ttl"     env:"ARTICLES_FEED_CACHE_TTL"     env-default:"60s"`
	LikesPerSecond   float64       `yaml:"likes_per_second"   env:"ARTICLES_LIKES_PER_SECOND"   env-default:"2"`
	LikesBurst       int           `yaml:"likes_burst"        env:"ARTICLES_LIKES_BURST"        env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
