package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// ErrTokenInvalid is returned for any token that fails verification other
// than by expiry of an access token.
var ErrTokenInvalid = fmt.Errorf("token invalid: %w", domain.ErrUnauthorized)

const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

// TokenService issues and verifies access and refresh JWTs.
// The two token kinds are signed with distinct keys.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenService creates a token service. Both secrets must be at least
// 32 characters and must differ; config validation enforces that.
func NewTokenService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// AccessTTL returns the configured access token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// Claims is the verified content of a token.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Username  string
	Role      domain.UserRole
	DomainID  *uuid.UUID
	ExpiresAt time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	DomainID string `json:"domain_id,omitempty"`
	Use      string `json:"typ"`
}

type refreshClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Use   string `json:"typ"`
}

// IssueAccessToken creates a short-lived token carrying the user's identity,
// role and domain.
func (s *TokenService) IssueAccessToken(u *domain.User) (string, error) {
	now := s.now()
	claims := accessClaims{
		RegisteredClaims: s.registered(u.ID, now, s.accessTTL),
		Email:            u.Email,
		Username:         u.Username,
		Role:             string(u.Role),
		Use:              tokenUseAccess,
	}
	if u.DomainID != nil {
		claims.DomainID = u.DomainID.String()
	}
	return sign(claims, s.accessSecret)
}

// IssueRefreshToken creates a long-lived token carrying only the user's id and email.
func (s *TokenService) IssueRefreshToken(u *domain.User) (string, error) {
	now := s.now()
	claims := refreshClaims{
		RegisteredClaims: s.registered(u.ID, now, s.refreshTTL),
		Email:            u.Email,
		Use:              tokenUseRefresh,
	}
	return sign(claims, s.refreshSecret)
}

// VerifyAccessToken validates an access token. Expiry is reported as
// domain.ErrTokenExpired so clients know to refresh; every other failure
// is ErrTokenInvalid.
func (s *TokenService) VerifyAccessToken(tokenString string) (*Claims, error) {
	var claims accessClaims
	if err := s.parse(tokenString, &claims, s.accessSecret); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.Use != tokenUseAccess {
		return nil, fmt.Errorf("%w: wrong token use %q", ErrTokenInvalid, claims.Use)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %v", ErrTokenInvalid, err)
	}

	role := domain.UserRole(claims.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, claims.Role)
	}

	out := &Claims{
		UserID:    userID,
		Email:     claims.Email,
		Username:  claims.Username,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.DomainID != "" {
		domainID, err := uuid.Parse(claims.DomainID)
		if err != nil {
			return nil, fmt.Errorf("%w: domain_id: %v", ErrTokenInvalid, err)
		}
		out.DomainID = &domainID
	}
	return out, nil
}

// VerifyRefreshToken validates a refresh token. Every failure, expiry
// included, is ErrTokenInvalid.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*Claims, error) {
	var claims refreshClaims
	if err := s.parse(tokenString, &claims, s.refreshSecret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.Use != tokenUseRefresh {
		return nil, fmt.Errorf("%w: wrong token use %q", ErrTokenInvalid, claims.Use)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %v", ErrTokenInvalid, err)
	}

	return &Claims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *TokenService) registered(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID.String(),
		Issuer:    s.issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	if tokenString == "" {
		return errors.New("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token claims")
	}
	return nil
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
