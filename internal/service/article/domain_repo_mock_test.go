package article

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var _ domainRepo = &domainRepoMock{}

type domainRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Domain, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *domainRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	if mock.GetByIDFunc == nil {
		panic("domainRepoMock.GetByIDFunc: method is nil but domainRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *domainRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
