package audit

import (
	"context"
	"sync"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	CreateFunc     func(ctx context.Context, e domain.AuditEntry) error
	ListRecentFunc func(ctx context.Context, limit int) ([]domain.AuditEntry, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
		ListRecent []struct {
			Ctx   context.Context
			Limit int
		}
	}
	lockCreate     sync.RWMutex
	lockListRecent sync.RWMutex
}

func (mock *auditRepoMock) Create(ctx context.Context, e domain.AuditEntry) error {
	if mock.CreateFunc == nil {
		panic("auditRepoMock.CreateFunc: method is nil but auditRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{Ctx: ctx, E: e}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *auditRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *auditRepoMock) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if mock.ListRecentFunc == nil {
		panic("auditRepoMock.ListRecentFunc: method is nil but auditRepo.ListRecent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockListRecent.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, callInfo)
	mock.lockListRecent.Unlock()
	return mock.ListRecentFunc(ctx, limit)
}

func (mock *auditRepoMock) ListRecentCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockListRecent.RLock()
	calls := mock.calls.ListRecent
	mock.lockListRecent.RUnlock()
	return calls
}
