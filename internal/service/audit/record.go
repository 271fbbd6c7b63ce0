package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

// Record hands e to a background writer and returns immediately. Missing
// client fields are filled from the request context. The write outlives the
// caller's context and never joins the caller's transaction; failures are
// logged and dropped.
func (s *Service) Record(ctx context.Context, e domain.AuditEntry) {
	client := ctxutil.ClientFromCtx(ctx)
	if e.ClientIdentity == "" {
		e.ClientIdentity = client.Identity
	}
	if e.ClientAgent == "" {
		e.ClientAgent = client.Agent
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.WarnContext(ctx, "audit entry dropped after shutdown",
			slog.String("action", e.Action.String()))
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	go func() {
		defer s.inflight.Done()
		s.write(detached, e)
	}()
}

func (s *Service) write(ctx context.Context, e domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.entries.Create(ctx, e); err != nil {
		attrs := []any{
			slog.String("action", e.Action.String()),
			slog.String("error", err.Error()),
		}
		if e.EntityID != nil {
			attrs = append(attrs, slog.String("entity_id", e.EntityID.String()))
		}
		s.log.WarnContext(ctx, "audit write failed", attrs...)
	}
}

// Close stops accepting entries and waits for in-flight writes, or until
// ctx is done.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
