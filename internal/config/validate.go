package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
)

const minSecretLength = 32

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := c.Articles.validate(); err != nil {
		return fmt.Errorf("articles: %w", err)
	}

	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database.statement_timeout must be >= 0 (got %v)", c.Database.StatementTimeout)
	}
	if c.Database.LockTimeout < 0 {
		return fmt.Errorf("database.lock_timeout must be >= 0 (got %v)", c.Database.LockTimeout)
	}

	if _, err := c.Server.ParseTrustedProxies(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if c.CORS.AllowCredentials && slices.Contains(splitList(c.CORS.AllowedOrigins), "*") {
		return fmt.Errorf("cors: allow_credentials cannot be combined with the \"*\" origin")
	}

	return nil
}

func (a *AuthConfig) validate() error {
	if len(a.AccessSecret) < minSecretLength {
		return fmt.Errorf("access_secret must be at least %d characters (got %d)", minSecretLength, len(a.AccessSecret))
	}
	if len(a.RefreshSecret) < minSecretLength {
		return fmt.Errorf("refresh_secret must be at least %d characters (got %d)", minSecretLength, len(a.RefreshSecret))
	}
	if a.AccessSecret == a.RefreshSecret {
		return fmt.Errorf("access_secret and refresh_secret must differ")
	}
	if a.AccessTokenTTL <= 0 || a.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if a.AccessTokenTTL >= a.RefreshTokenTTL {
		return fmt.Errorf("access_token_ttl (%v) must be shorter than refresh_token_ttl (%v)", a.AccessTokenTTL, a.RefreshTokenTTL)
	}
	if a.PasswordHashCost < bcrypt.MinCost || a.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("password_hash_cost must be within [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, a.PasswordHashCost)
	}
	if a.LoginMaxAttempts <= 0 {
		return fmt.Errorf("login_max_attempts must be > 0 (got %d)", a.LoginMaxAttempts)
	}
	if a.LoginWindow < time.Second {
		return fmt.Errorf("login_window must be at least 1s (got %v)", a.LoginWindow)
	}
	return nil
}

func (a *ArticlesConfig) validate() error {
	if a.AutoArchiveAfter < 24*time.Hour {
		return fmt.Errorf("auto_archive_after must be at least 24h (got %v)", a.AutoArchiveAfter)
	}
	if _, err := cron.ParseStandard(a.AutoArchiveSpec); err != nil {
		return fmt.Errorf("auto_archive_spec %q: %w", a.AutoArchiveSpec, err)
	}
	if a.FeedCacheTTL < 0 {
		return fmt.Errorf("feed_cache_ttl must be >= 0 (got %v)", a.FeedCacheTTL)
	}
	if a.LikesPerSecond <= 0 || a.LikesBurst <= 0 {
		return fmt.Errorf("likes_per_second and likes_burst must be > 0")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for v := range strings.SplitSeq(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
