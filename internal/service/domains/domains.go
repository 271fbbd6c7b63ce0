package domains

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/authz"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/principal"
)

// List returns every domain ordered by name. Public.
func (s *Service) List(ctx context.Context) ([]*domain.Domain, error) {
	list, err := s.domains.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("domains.List: %w", err)
	}
	return list, nil
}

// Get returns a single domain. Public.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	d, err := s.domains.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("domains.Get: %w", err)
	}
	return d, nil
}

// Create adds a domain. Super administrators only.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Domain, error) {
	actor, err := s.requireManager(ctx)
	if err != nil {
		return nil, err
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.domains.Create(ctx, &domain.Domain{Name: input.Name, Color: input.Color})
	if err != nil {
		return nil, fmt.Errorf("domains.Create: %w", err)
	}

	s.record(ctx, actor, domain.AuditActionCreate, created.ID)
	s.log.InfoContext(ctx, "domain created",
		slog.String("domain_id", created.ID.String()),
		slog.String("name", created.Name),
	)
	return created, nil
}

// Update renames or recolors a domain. Super administrators only.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Domain, error) {
	actor, err := s.requireManager(ctx)
	if err != nil {
		return nil, err
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.domains.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("domains.Update: %w", err)
	}

	next := *current
	if input.Name != nil {
		next.Name = *input.Name
	}
	if input.Color != nil {
		next.Color = *input.Color
	}

	updated, err := s.domains.Update(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("domains.Update: %w", err)
	}

	s.record(ctx, actor, domain.AuditActionUpdate, updated.ID)
	return updated, nil
}

// Delete removes a domain together with its articles. Super administrators only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := s.requireManager(ctx)
	if err != nil {
		return err
	}

	removed, err := s.domains.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("domains.Delete: %w", err)
	}

	s.record(ctx, actor, domain.AuditActionDelete, id)
	if removed > 0 && s.feed != nil {
		if err := s.feed.Invalidate(ctx); err != nil {
			s.log.WarnContext(ctx, "feed cache invalidation failed", slog.String("error", err.Error()))
		}
	}

	s.log.InfoContext(ctx, "domain deleted",
		slog.String("domain_id", id.String()),
		slog.Int("articles_removed", removed),
	)
	return nil
}

func (s *Service) requireManager(ctx context.Context) (*domain.Actor, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionManageDomains, authz.Resource{}).Err(); err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *Service) record(ctx context.Context, actor *domain.Actor, action domain.AuditAction, id uuid.UUID) {
	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &actor.UserID,
		Action:     action,
		EntityType: domain.EntityTypeDomain,
		EntityID:   &id,
	})
}
