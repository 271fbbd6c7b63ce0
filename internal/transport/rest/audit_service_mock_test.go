package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/newsroom-backend/internal/service/audit"
)

var _ auditService = &auditServiceMock{}

type auditServiceMock struct {
	ListRecentFunc func(ctx context.Context, limit int) ([]audit.Entry, error)

	calls struct {
		ListRecent []struct {
			Ctx   context.Context
			Limit int
		}
	}
	lockListRecent sync.RWMutex
}

func (mock *auditServiceMock) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if mock.ListRecentFunc == nil {
		panic("auditServiceMock.ListRecentFunc: method is nil but auditService.ListRecent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{
		Ctx:   ctx,
		Limit: limit,
	}
	mock.lockListRecent.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, callInfo)
	mock.lockListRecent.Unlock()
	return mock.ListRecentFunc(ctx, limit)
}

func (mock *auditServiceMock) ListRecentCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockListRecent.RLock()
	calls := mock.calls.ListRecent
	mock.lockListRecent.RUnlock()
	return calls
}
