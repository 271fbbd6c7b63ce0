package rest

import "sync"

var _ clientLimiter = &clientLimiterMock{}

type clientLimiterMock struct {
	AllowFunc func(key string) (bool, int)

	calls struct {
		Allow []struct {
			Key string
		}
	}
	lockAllow sync.RWMutex
}

func (mock *clientLimiterMock) Allow(key string) (bool, int) {
	if mock.AllowFunc == nil {
		panic("clientLimiterMock.AllowFunc: method is nil but clientLimiter.Allow was just called")
	}
	callInfo := struct {
		Key string
	}{
		Key: key,
	}
	mock.lockAllow.Lock()
	mock.calls.Allow = append(mock.calls.Allow, callInfo)
	mock.lockAllow.Unlock()
	return mock.AllowFunc(key)
}

func (mock *clientLimiterMock) AllowCalls() []struct {
	Key string
} {
	mock.lockAllow.RLock()
	calls := mock.calls.Allow
	mock.lockAllow.RUnlock()
	return calls
}
