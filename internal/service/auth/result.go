package auth

import "github.com/heartmarshall/newsroom-backend/internal/domain"

// TokenTypeBearer is the scheme clients send the access token under.
const TokenTypeBearer = "Bearer"

// AuthResult is a freshly signed token pair and the user it was issued for.
// Both tokens carry the user's role and domain as of issuance.
type AuthResult struct {
	TokenType    string
	AccessToken  string
	RefreshToken string
	User         *domain.User
}
