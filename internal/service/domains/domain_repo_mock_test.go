package domains

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var _ domainRepo = &domainRepoMock{}

type domainRepoMock struct {
	ListFunc    func(ctx context.Context) ([]*domain.Domain, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Domain, error)
	CreateFunc  func(ctx context.Context, d *domain.Domain) (*domain.Domain, error)
	UpdateFunc  func(ctx context.Context, d *domain.Domain) (*domain.Domain, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) (int, error)

	calls struct {
		List []struct {
			Ctx context.Context
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			D   *domain.Domain
		}
		Update []struct {
			Ctx context.Context
			D   *domain.Domain
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockList    sync.RWMutex
	lockGetByID sync.RWMutex
	lockCreate  sync.RWMutex
	lockUpdate  sync.RWMutex
	lockDelete  sync.RWMutex
}

func (mock *domainRepoMock) List(ctx context.Context) ([]*domain.Domain, error) {
	if mock.ListFunc == nil {
		panic("domainRepoMock.ListFunc: method is nil but domainRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *domainRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
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

func (mock *domainRepoMock) Create(ctx context.Context, d *domain.Domain) (*domain.Domain, error) {
	if mock.CreateFunc == nil {
		panic("domainRepoMock.CreateFunc: method is nil but domainRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   *domain.Domain
	}{
		Ctx: ctx,
		D:   d,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *domainRepoMock) CreateCalls() []struct {
	Ctx context.Context
	D   *domain.Domain
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *domainRepoMock) Update(ctx context.Context, d *domain.Domain) (*domain.Domain, error) {
	if mock.UpdateFunc == nil {
		panic("domainRepoMock.UpdateFunc: method is nil but domainRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   *domain.Domain
	}{
		Ctx: ctx,
		D:   d,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, d)
}

func (mock *domainRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	D   *domain.Domain
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *domainRepoMock) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	if mock.DeleteFunc == nil {
		panic("domainRepoMock.DeleteFunc: method is nil but domainRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *domainRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
