package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/authz"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/principal"
)

// Create drafts an article in the actor's domain. Articles written by domain
// and super administrators skip review and are published immediately.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Article, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionCreateArticle, authz.Resource{}).Err(); err != nil {
		return nil, err
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	domainID, err := s.targetDomain(ctx, actor, input.DomainID)
	if err != nil {
		return nil, err
	}

	created, err := s.articles.Create(ctx, &domain.Article{
		Title:             input.Title,
		Content:           input.Content,
		DomainID:          domainID,
		AuthorID:          actor.UserID,
		PendingValidation: !actor.Role.AtLeast(domain.UserRoleDomainAdmin),
	})
	if err != nil {
		return nil, fmt.Errorf("article.Create: %w", err)
	}

	s.record(ctx, actor, domain.AuditActionCreate, created.ID)
	if created.IsPublic() {
		s.invalidateFeed(ctx)
	}

	s.log.InfoContext(ctx, "article created",
		slog.String("article_id", created.ID.String()),
		slog.String("domain_id", created.DomainID.String()),
		slog.String("state", created.State().String()),
	)
	return created, nil
}

// targetDomain picks the domain a new article is written into. Super
// administrators must name an existing domain; everyone else is pinned to
// their own and a requested domain is ignored.
func (s *Service) targetDomain(ctx context.Context, actor *domain.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if !actor.Role.IsSuperAdmin() {
		if requested != nil && *requested != *actor.DomainID {
			s.log.DebugContext(ctx, "requested domain overridden",
				slog.String("requested", requested.String()),
				slog.String("domain_id", actor.DomainID.String()),
			)
		}
		return *actor.DomainID, nil
	}

	if requested == nil {
		return uuid.Nil, domain.NewValidationError("domain_id", "required")
	}
	if err := s.requireDomain(ctx, *requested); err != nil {
		return uuid.Nil, err
	}
	return *requested, nil
}

// requireDomain reports an unknown domain as a validation failure of the
// domain_id field.
func (s *Service) requireDomain(ctx context.Context, id uuid.UUID) error {
	if _, err := s.domains.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("domain_id", "domain does not exist")
		}
		return fmt.Errorf("load domain: %w", err)
	}
	return nil
}
