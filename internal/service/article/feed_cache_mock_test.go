package article

import (
	"context"
	"sync"
)

var _ feedCache = &feedCacheMock{}

type feedCacheMock struct {
	GenerationFunc func(ctx context.Context) (int64, error)
	GetFunc        func(ctx context.Context, gen int64, key string) ([]byte, bool, error)
	InvalidateFunc func(ctx context.Context) error
	SetFunc        func(ctx context.Context, gen int64, key string, value []byte) error

	calls struct {
		Generation []struct {
			Ctx context.Context
		}
		Get []struct {
			Ctx context.Context
			Gen int64
			Key string
		}
		Invalidate []struct {
			Ctx context.Context
		}
		Set []struct {
			Ctx   context.Context
			Gen   int64
			Key   string
			Value []byte
		}
	}
	lockGeneration sync.RWMutex
	lockGet        sync.RWMutex
	lockInvalidate sync.RWMutex
	lockSet        sync.RWMutex
}

func (mock *feedCacheMock) Generation(ctx context.Context) (int64, error) {
	if mock.GenerationFunc == nil {
		panic("feedCacheMock.GenerationFunc: method is nil but feedCache.Generation was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockGeneration.Lock()
	mock.calls.Generation = append(mock.calls.Generation, callInfo)
	mock.lockGeneration.Unlock()
	return mock.GenerationFunc(ctx)
}

func (mock *feedCacheMock) GenerationCalls() []struct {
	Ctx context.Context
} {
	mock.lockGeneration.RLock()
	calls := mock.calls.Generation
	mock.lockGeneration.RUnlock()
	return calls
}

func (mock *feedCacheMock) Get(ctx context.Context, gen int64, key string) ([]byte, bool, error) {
	if mock.GetFunc == nil {
		panic("feedCacheMock.GetFunc: method is nil but feedCache.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Gen int64
		Key string
	}{
		Ctx: ctx,
		Gen: gen,
		Key: key,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, gen, key)
}

func (mock *feedCacheMock) GetCalls() []struct {
	Ctx context.Context
	Gen int64
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *feedCacheMock) Invalidate(ctx context.Context) error {
	if mock.InvalidateFunc == nil {
		panic("feedCacheMock.InvalidateFunc: method is nil but feedCache.Invalidate was just called")
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

func (mock *feedCacheMock) InvalidateCalls() []struct {
	Ctx context.Context
} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}

func (mock *feedCacheMock) Set(ctx context.Context, gen int64, key string, value []byte) error {
	if mock.SetFunc == nil {
		panic("feedCacheMock.SetFunc: method is nil but feedCache.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Gen   int64
		Key   string
		Value []byte
	}{
		Ctx:   ctx,
		Gen:   gen,
		Key:   key,
		Value: value,
	}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, gen, key, value)
}

func (mock *feedCacheMock) SetCalls() []struct {
	Ctx   context.Context
	Gen   int64
	Key   string
	Value []byte
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}
