package article

import (
	"context"
	"sync"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var _ auditRecorder = &auditRecorderMock{}

type auditRecorderMock struct {
	RecordFunc func(ctx context.Context, e domain.AuditEntry)

	calls struct {
		Record []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
	}
	lockRecord sync.RWMutex
}

func (mock *auditRecorderMock) Record(ctx context.Context, e domain.AuditEntry) {
	if mock.RecordFunc == nil {
		panic("auditRecorderMock.RecordFunc: method is nil but auditRecorder.Record was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	mock.RecordFunc(ctx, e)
}

func (mock *auditRecorderMock) RecordCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
