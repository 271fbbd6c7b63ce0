package article

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var _ articleRepo = &articleRepoMock{}

type articleRepoMock struct {
	ArchiveOlderThanFunc func(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	AddEditorFunc        func(ctx context.Context, articleID uuid.UUID, userID uuid.UUID) (bool, error)
	CreateFunc           func(ctx context.Context, a *domain.Article) (*domain.Article, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	GetForUpdateFunc     func(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	ListFunc             func(ctx context.Context, f domain.ArticleFilter) (*domain.ArticlePage, error)
	SetArchivedFunc      func(ctx context.Context, id uuid.UUID, archived bool) (*domain.Article, error)
	SetValidatedFunc     func(ctx context.Context, id uuid.UUID, validatorID uuid.UUID, at time.Time) (*domain.Article, error)
	UpdateFunc           func(ctx context.Context, id uuid.UUID, p domain.ArticleUpdateParams) (*domain.Article, error)

	calls struct {
		ArchiveOlderThan []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
		AddEditor []struct {
			Ctx       context.Context
			ArticleID uuid.UUID
			UserID    uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			A   *domain.Article
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.ArticleFilter
		}
		SetArchived []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Archived bool
		}
		SetValidated []struct {
			Ctx         context.Context
			ID          uuid.UUID
			ValidatorID uuid.UUID
			At          time.Time
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			P   domain.ArticleUpdateParams
		}
	}
	lockArchiveOlderThan sync.RWMutex
	lockAddEditor        sync.RWMutex
	lockCreate           sync.RWMutex
	lockDelete           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockGetForUpdate     sync.RWMutex
	lockList             sync.RWMutex
	lockSetArchived      sync.RWMutex
	lockSetValidated     sync.RWMutex
	lockUpdate           sync.RWMutex
}

func (mock *articleRepoMock) ArchiveOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	if mock.ArchiveOlderThanFunc == nil {
		panic("articleRepoMock.ArchiveOlderThanFunc: method is nil but articleRepo.ArchiveOlderThan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{
		Ctx:    ctx,
		Cutoff: cutoff,
	}
	mock.lockArchiveOlderThan.Lock()
	mock.calls.ArchiveOlderThan = append(mock.calls.ArchiveOlderThan, callInfo)
	mock.lockArchiveOlderThan.Unlock()
	return mock.ArchiveOlderThanFunc(ctx, cutoff)
}

func (mock *articleRepoMock) ArchiveOlderThanCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockArchiveOlderThan.RLock()
	calls := mock.calls.ArchiveOlderThan
	mock.lockArchiveOlderThan.RUnlock()
	return calls
}

func (mock *articleRepoMock) AddEditor(ctx context.Context, articleID uuid.UUID, userID uuid.UUID) (bool, error) {
	if mock.AddEditorFunc == nil {
		panic("articleRepoMock.AddEditorFunc: method is nil but articleRepo.AddEditor was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ArticleID uuid.UUID
		UserID    uuid.UUID
	}{
		Ctx:       ctx,
		ArticleID: articleID,
		UserID:    userID,
	}
	mock.lockAddEditor.Lock()
	mock.calls.AddEditor = append(mock.calls.AddEditor, callInfo)
	mock.lockAddEditor.Unlock()
	return mock.AddEditorFunc(ctx, articleID, userID)
}

func (mock *articleRepoMock) AddEditorCalls() []struct {
	Ctx       context.Context
	ArticleID uuid.UUID
	UserID    uuid.UUID
} {
	mock.lockAddEditor.RLock()
	calls := mock.calls.AddEditor
	mock.lockAddEditor.RUnlock()
	return calls
}

func (mock *articleRepoMock) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	if mock.CreateFunc == nil {
		panic("articleRepoMock.CreateFunc: method is nil but articleRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   *domain.Article
	}{
		Ctx: ctx,
		A:   a,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *articleRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   *domain.Article
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *articleRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("articleRepoMock.DeleteFunc: method is nil but articleRepo.Delete was just called")
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

func (mock *articleRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *articleRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	if mock.GetByIDFunc == nil {
		panic("articleRepoMock.GetByIDFunc: method is nil but articleRepo.GetByID was just called")
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

func (mock *articleRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *articleRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	if mock.GetForUpdateFunc == nil {
		panic("articleRepoMock.GetForUpdateFunc: method is nil but articleRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *articleRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *articleRepoMock) List(ctx context.Context, f domain.ArticleFilter) (*domain.ArticlePage, error) {
	if mock.ListFunc == nil {
		panic("articleRepoMock.ListFunc: method is nil but articleRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ArticleFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *articleRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.ArticleFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *articleRepoMock) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*domain.Article, error) {
	if mock.SetArchivedFunc == nil {
		panic("articleRepoMock.SetArchivedFunc: method is nil but articleRepo.SetArchived was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Archived bool
	}{
		Ctx:      ctx,
		ID:       id,
		Archived: archived,
	}
	mock.lockSetArchived.Lock()
	mock.calls.SetArchived = append(mock.calls.SetArchived, callInfo)
	mock.lockSetArchived.Unlock()
	return mock.SetArchivedFunc(ctx, id, archived)
}

func (mock *articleRepoMock) SetArchivedCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Archived bool
} {
	mock.lockSetArchived.RLock()
	calls := mock.calls.SetArchived
	mock.lockSetArchived.RUnlock()
	return calls
}

func (mock *articleRepoMock) SetValidated(ctx context.Context, id uuid.UUID, validatorID uuid.UUID, at time.Time) (*domain.Article, error) {
	if mock.SetValidatedFunc == nil {
		panic("articleRepoMock.SetValidatedFunc: method is nil but articleRepo.SetValidated was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ID          uuid.UUID
		ValidatorID uuid.UUID
		At          time.Time
	}{
		Ctx:         ctx,
		ID:          id,
		ValidatorID: validatorID,
		At:          at,
	}
	mock.lockSetValidated.Lock()
	mock.calls.SetValidated = append(mock.calls.SetValidated, callInfo)
	mock.lockSetValidated.Unlock()
	return mock.SetValidatedFunc(ctx, id, validatorID, at)
}

func (mock *articleRepoMock) SetValidatedCalls() []struct {
	Ctx         context.Context
	ID          uuid.UUID
	ValidatorID uuid.UUID
	At          time.Time
} {
	mock.lockSetValidated.RLock()
	calls := mock.calls.SetValidated
	mock.lockSetValidated.RUnlock()
	return calls
}

func (mock *articleRepoMock) Update(ctx context.Context, id uuid.UUID, p domain.ArticleUpdateParams) (*domain.Article, error) {
	if mock.UpdateFunc == nil {
		panic("articleRepoMock.UpdateFunc: method is nil but articleRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		P   domain.ArticleUpdateParams
	}{
		Ctx: ctx,
		ID:  id,
		P:   p,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, p)
}

func (mock *articleRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	P   domain.ArticleUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
