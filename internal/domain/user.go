package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the credential store.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         UserRole
	DomainID     *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated principal an operation runs on behalf of.
// It is always derived from the server-side user record, never from request payloads.
type Actor struct {
	UserID   uuid.UUID
	Username string
	Role     UserRole
	DomainID *uuid.UUID
}

// ActorFromUser builds an Actor from a loaded user record.
func ActorFromUser(u *User) *Actor {
	return &Actor{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		DomainID: u.DomainID,
	}
}

// HasDomain reports whether the actor is assigned to a domain.
func (a *Actor) HasDomain() bool {
	return a != nil && a.DomainID != nil && *a.DomainID != uuid.Nil
}

// InDomain reports whether the actor is assigned to exactly the given domain.
func (a *Actor) InDomain(domainID uuid.UUID) bool {
	return a.HasDomain() && *a.DomainID == domainID
}

// UserUpdateParams carries the mutable user fields; nil means unchanged.
// ClearDomain forces domain_id to NULL and takes precedence over DomainID.
type UserUpdateParams struct {
	Username    *string
	Email       *string
	Role        *UserRole
	DomainID    *uuid.UUID
	ClearDomain bool
}

// UserFilter narrows user listings.
type UserFilter struct {
	DomainID *uuid.UUID
	Role     *UserRole
	Limit    int
	Offset   int
}
