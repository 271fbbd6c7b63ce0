// Package principal resolves the acting user of a request from the
// credential store. Tokens only carry the user id that selects the record;
// role and domain always come from storage so that demotions take effect
// immediately.
package principal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

// UserGetter loads a user record by id.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Require returns the authenticated actor or a NOT_AUTHENTICATED denial.
// A token whose user no longer exists is treated as unauthenticated.
func Require(ctx context.Context, users UserGetter) (*domain.Actor, error) {
	actor, err := Optional(ctx, users)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.Deny(domain.ReasonNotAuthenticated)
	}
	return actor, nil
}

// Optional returns the authenticated actor, or nil for an anonymous request.
func Optional(ctx context.Context, users UserGetter) (*domain.Actor, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil
	}

	u, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Deny(domain.ReasonNotAuthenticated)
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}
	return domain.ActorFromUser(u), nil
}
