package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// Refresh exchanges a valid refresh token for a new pair. The user is
// re-read so the new access token reflects the current role and domain.
// A deleted user or a changed email invalidates the refresh token.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.tokens.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, auth.ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted user",
				slog.String("user_id", claims.UserID.String()))
			return nil, auth.ErrTokenInvalid
		}
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	if domain.NormalizeEmail(user.Email) != domain.NormalizeEmail(claims.Email) {
		s.log.WarnContext(ctx, "refresh token email no longer matches",
			slog.String("user_id", user.ID.String()))
		return nil, auth.ErrTokenInvalid
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}
	return result, nil
}
