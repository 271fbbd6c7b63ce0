package like

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var _ likeRepo = &likeRepoMock{}

type likeRepoMock struct {
	ToggleFunc func(ctx context.Context, articleID uuid.UUID, identity string) (*domain.LikeResult, error)

	calls struct {
		Toggle []struct {
			Ctx       context.Context
			ArticleID uuid.UUID
			Identity  string
		}
	}
	lockToggle sync.RWMutex
}

func (mock *likeRepoMock) Toggle(ctx context.Context, articleID uuid.UUID, identity string) (*domain.LikeResult, error) {
	if mock.ToggleFunc == nil {
		panic("likeRepoMock.ToggleFunc: method is nil but likeRepo.Toggle was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ArticleID uuid.UUID
		Identity  string
	}{
		Ctx:       ctx,
		ArticleID: articleID,
		Identity:  identity,
	}
	mock.lockToggle.Lock()
	mock.calls.Toggle = append(mock.calls.Toggle, callInfo)
	mock.lockToggle.Unlock()
	return mock.ToggleFunc(ctx, articleID, identity)
}

func (mock *likeRepoMock) ToggleCalls() []struct {
	Ctx       context.Context
	ArticleID uuid.UUID
	Identity  string
} {
	mock.lockToggle.RLock()
	calls := mock.calls.Toggle
	mock.lockToggle.RUnlock()
	return calls
}
