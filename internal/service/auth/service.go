package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// tokenManager issues and verifies the access/refresh token pair.
type tokenManager interface {
	IssueAccessToken(u *domain.User) (string, error)
	IssueRefreshToken(u *domain.User) (string, error)
	VerifyAccessToken(token string) (*auth.Claims, error)
	VerifyRefreshToken(token string) (*auth.Claims, error)
}

// passwordHasher verifies stored password hashes.
type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// loginLimiter counts login attempts per client identity.
type loginLimiter interface {
	Check(ctx context.Context, identity string) error
}

// auditRecorder records audit entries in the background.
type auditRecorder interface {
	Record(ctx context.Context, e domain.AuditEntry)
}

// Service implements auth operations.
type Service struct {
	log     *slog.Logger
	users   userRepo
	tokens  tokenManager
	hasher  passwordHasher
	limiter loginLimiter
	audit   auditRecorder

	// dummyHash is compared against when the email is unknown so that both
	// failure paths spend a bcrypt comparison.
	dummyOnce sync.Once
	dummyHash string
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenManager,
	hasher passwordHasher,
	limiter loginLimiter,
	audit auditRecorder,
) *Service {
	return &Service{
		log:     logger.With("service", "auth"),
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		limiter: limiter,
		audit:   audit,
	}
}

// issueTokens signs a fresh access/refresh pair reflecting the user's
// current role and domain.
func (s *Service) issueTokens(user *domain.User) (*AuthResult, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &AuthResult{
		TokenType:    TokenTypeBearer,
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("dummy-password-for-timing")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
