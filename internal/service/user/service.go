// Package user manages accounts: creation and role assignment by super
// administrators, self-service profile changes, and scoped listings.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, f domain.UserFilter) ([]*domain.User, int, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, p domain.UserUpdateParams) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// passwordHasher hashes new passwords.
type passwordHasher interface {
	Hash(password string) (string, error)
}

// auditRecorder records audit entries in the background.
type auditRecorder interface {
	Record(ctx context.Context, e domain.AuditEntry)
}

// txManager defines the transaction manager interface needed by user service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements user management operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	hasher passwordHasher
	audit  auditRecorder
	tx     txManager
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	hasher passwordHasher,
	audit auditRecorder,
	tx txManager,
) *Service {
	return &Service{
		log:    logger.With("service", "user"),
		users:  users,
		hasher: hasher,
		audit:  audit,
		tx:     tx,
	}
}

func (s *Service) record(ctx context.Context, actor *domain.Actor, action domain.AuditAction, id uuid.UUID) {
	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &actor.UserID,
		Action:     action,
		EntityType: domain.EntityTypeUser,
		EntityID:   &id,
	})
}
