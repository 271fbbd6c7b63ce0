package auth

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

// Logout records the end of the session. Tokens are stateless; the client
// discards them.
func (s *Service) Logout(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Deny(domain.ReasonNotAuthenticated)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &userID,
		Action:     domain.AuditActionLogout,
		EntityType: domain.EntityTypeSession,
	})
	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", userID.String()))
	return nil
}

// Authenticate verifies an access token for the auth middleware. Expired
// tokens yield domain.ErrTokenExpired; anything else auth.ErrTokenInvalid.
func (s *Service) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	return s.tokens.VerifyAccessToken(token)
}
