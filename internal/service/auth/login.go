package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)

// Login authenticates a user with email + password. Every attempt counts
// against the client's login budget, successful or not.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity := ctxutil.ClientFromCtx(ctx).Identity
	if identity == "" {
		identity = "unknown"
	}
	if err := s.limiter.Check(ctx, identity); err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			s.log.WarnContext(ctx, "login rate limited", slog.String("client", identity))
			return nil, err
		}
		return nil, fmt.Errorf("auth.Login rate limit: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("auth.Login get user: %w", err)
		}
		_, _ = s.hasher.Compare(s.dummy(), input.Password)
		s.audit.Record(ctx, domain.AuditEntry{Action: domain.AuditActionLoginFailed, EntityType: domain.EntityTypeSession})
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Compare(user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Login compare: %w", err)
	}
	if !ok {
		s.audit.Record(ctx, domain.AuditEntry{
			UserID:     &user.ID,
			Action:     domain.AuditActionLoginFailed,
			EntityType: domain.EntityTypeSession,
		})
		return nil, ErrInvalidCredentials
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &user.ID,
		Action:     domain.AuditActionLogin,
		EntityType: domain.EntityTypeSession,
	})
	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))

	return result, nil
}
