// Package domains manages the topical domains that scope articles and
// domain-bound roles.
package domains

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

type domainRepo interface {
	List(ctx context.Context) ([]*domain.Domain, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error)
	Create(ctx context.Context, d *domain.Domain) (*domain.Domain, error)
	Update(ctx context.Context, d *domain.Domain) (*domain.Domain, error)
	Delete(ctx context.Context, id uuid.UUID) (int, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type auditRecorder interface {
	Record(ctx context.Context, e domain.AuditEntry)
}

// feedInvalidator drops cached public feed pages.
type feedInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service provides domain management operations.
type Service struct {
	log     *slog.Logger
	domains domainRepo
	users   userRepo
	audit   auditRecorder
	feed    feedInvalidator
}

// NewService creates a new domains service. feed may be nil.
func NewService(
	log *slog.Logger,
	domains domainRepo,
	users userRepo,
	audit auditRecorder,
	feed feedInvalidator,
) *Service {
	return &Service{
		log:     log.With("service", "domains"),
		domains: domains,
		users:   users,
		audit:   audit,
		feed:    feed,
	}
}
