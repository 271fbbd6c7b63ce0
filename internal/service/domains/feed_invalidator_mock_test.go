package domains

import (
	"context"
	"sync"
)

var _ feedInvalidator = &feedInvalidatorMock{}

type feedInvalidatorMock struct {
	InvalidateFunc func(ctx context.Context) error

	calls struct {
		Invalidate []struct {
			Ctx context.Context
		}
	}
	lockInvalidate sync.RWMutex
}

func (mock *feedInvalidatorMock) Invalidate(ctx context.Context) error {
	if mock.InvalidateFunc == nil {
		panic("feedInvalidatorMock.InvalidateFunc: method is nil but feedInvalidator.Invalidate was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	return mock.InvalidateFunc(ctx)
}

func (mock *feedInvalidatorMock) InvalidateCalls() []struct {
	Ctx context.Context
} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
