// Package audit records security-relevant events and exposes the recent
// log to super administrators.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

type auditRepo interface {
	Create(ctx context.Context, e domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 500

	defaultWriteTimeout = 5 * time.Second
)

// Service writes audit entries in the background and serves the recent log.
type Service struct {
	log          *slog.Logger
	entries      auditRepo
	users        userRepo
	writeTimeout time.Duration

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(log *slog.Logger, entries auditRepo, users userRepo) *Service {
	return &Service{
		log:          log.With("service", "audit"),
		entries:      entries,
		users:        users,
		writeTimeout: defaultWriteTimeout,
	}
}
