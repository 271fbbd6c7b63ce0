package auth

import (
	"sync"

	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var _ tokenManager = &tokenManagerMock{}

type tokenManagerMock struct {
	IssueAccessTokenFunc   func(u *domain.User) (string, error)
	IssueRefreshTokenFunc  func(u *domain.User) (string, error)
	VerifyAccessTokenFunc  func(token string) (*auth.Claims, error)
	VerifyRefreshTokenFunc func(token string) (*auth.Claims, error)

	calls struct {
		IssueAccessToken []struct {
			U *domain.User
		}
		IssueRefreshToken []struct {
			U *domain.User
		}
		VerifyAccessToken []struct {
			Token string
		}
		VerifyRefreshToken []struct {
			Token string
		}
	}
	lockIssueAccessToken   sync.RWMutex
	lockIssueRefreshToken  sync.RWMutex
	lockVerifyAccessToken  sync.RWMutex
	lockVerifyRefreshToken sync.RWMutex
}

func (mock *tokenManagerMock) IssueAccessToken(u *domain.User) (string, error) {
	if mock.IssueAccessTokenFunc == nil {
		panic("tokenManagerMock.IssueAccessTokenFunc: method is nil but tokenManager.IssueAccessToken was just called")
	}
	callInfo := struct {
		U *domain.User
	}{
		U: u,
	}
	mock.lockIssueAccessToken.Lock()
	mock.calls.IssueAccessToken = append(mock.calls.IssueAccessToken, callInfo)
	mock.lockIssueAccessToken.Unlock()
	return mock.IssueAccessTokenFunc(u)
}

func (mock *tokenManagerMock) IssueAccessTokenCalls() []struct {
	U *domain.User
} {
	mock.lockIssueAccessToken.RLock()
	calls := mock.calls.IssueAccessToken
	mock.lockIssueAccessToken.RUnlock()
	return calls
}

func (mock *tokenManagerMock) IssueRefreshToken(u *domain.User) (string, error) {
	if mock.IssueRefreshTokenFunc == nil {
		panic("tokenManagerMock.IssueRefreshTokenFunc: method is nil but tokenManager.IssueRefreshToken was just called")
	}
	callInfo := struct {
		U *domain.User
	}{
		U: u,
	}
	mock.lockIssueRefreshToken.Lock()
	mock.calls.IssueRefreshToken = append(mock.calls.IssueRefreshToken, callInfo)
	mock.lockIssueRefreshToken.Unlock()
	return mock.IssueRefreshTokenFunc(u)
}

func (mock *tokenManagerMock) IssueRefreshTokenCalls() []struct {
	U *domain.User
} {
	mock.lockIssueRefreshToken.RLock()
	calls := mock.calls.IssueRefreshToken
	mock.lockIssueRefreshToken.RUnlock()
	return calls
}

func (mock *tokenManagerMock) VerifyAccessToken(token string) (*auth.Claims, error) {
	if mock.VerifyAccessTokenFunc == nil {
		panic("tokenManagerMock.VerifyAccessTokenFunc: method is nil but tokenManager.VerifyAccessToken was just called")
	}
	callInfo := struct {
		Token string
	}{
		Token: token,
	}
	mock.lockVerifyAccessToken.Lock()
	mock.calls.VerifyAccessToken = append(mock.calls.VerifyAccessToken, callInfo)
	mock.lockVerifyAccessToken.Unlock()
	return mock.VerifyAccessTokenFunc(token)
}

func (mock *tokenManagerMock) VerifyAccessTokenCalls() []struct {
	Token string
} {
	mock.lockVerifyAccessToken.RLock()
	calls := mock.calls.VerifyAccessToken
	mock.lockVerifyAccessToken.RUnlock()
	return calls
}

func (mock *tokenManagerMock) VerifyRefreshToken(token string) (*auth.Claims, error) {
	if mock.VerifyRefreshTokenFunc == nil {
		panic("tokenManagerMock.VerifyRefreshTokenFunc: method is nil but tokenManager.VerifyRefreshToken was just called")
	}
	callInfo := struct {
		Token string
	}{
		Token: token,
	}
	mock.lockVerifyRefreshToken.Lock()
	mock.calls.VerifyRefreshToken = append(mock.calls.VerifyRefreshToken, callInfo)
	mock.lockVerifyRefreshToken.Unlock()
	return mock.VerifyRefreshTokenFunc(token)
}

func (mock *tokenManagerMock) VerifyRefreshTokenCalls() []struct {
	Token string
} {
	mock.lockVerifyRefreshToken.RLock()
	calls := mock.calls.VerifyRefreshToken
	mock.lockVerifyRefreshToken.RUnlock()
	return calls
}
