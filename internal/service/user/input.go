package user

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const (
	minUsername = 3
	maxUsername = 50
	maxEmail    = 100
	minPassword = 6
	maxPassword = 128
)

// CreateInput holds parameters for creating an account.
type CreateInput struct {
	Username string
	Email    string
	Password string
	Role     domain.UserRole
	DomainID *uuid.UUID
}

func (i *CreateInput) normalize() {
	i.Username = strings.TrimSpace(i.Username)
	i.Email = domain.NormalizeEmail(i.Email)
	if i.Role == "" {
		i.Role = domain.UserRoleUser
	}
	if !i.Role.RequiresDomain() {
		i.DomainID = nil
	}
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError
	errs = appendUsernameErrors(errs, i.Username)
	errs = appendEmailErrors(errs, i.Email)
	errs = appendPasswordErrors(errs, i.Password)

	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "invalid role"})
	} else if i.Role.RequiresDomain() && (i.DomainID == nil || *i.DomainID == uuid.Nil) {
		errs = append(errs, domain.FieldError{Field: "domain_id", Message: "required for " + i.Role.String()})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for updating an account. Nil fields are left
// unchanged. Role and DomainID are reserved to super administrators.
type UpdateInput struct {
	ID       uuid.UUID
	Username *string
	Email    *string
	Password *string
	Role     *domain.UserRole
	DomainID *uuid.UUID
}

func (i *UpdateInput) normalize() {
	if i.Username != nil {
		u := strings.TrimSpace(*i.Username)
		i.Username = &u
	}
	if i.Email != nil {
		e := domain.NormalizeEmail(*i.Email)
		i.Email = &e
	}
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Username == nil && i.Email == nil && i.Password == nil && i.Role == nil && i.DomainID == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Username != nil {
		errs = appendUsernameErrors(errs, *i.Username)
	}
	if i.Email != nil {
		errs = appendEmailErrors(errs, *i.Email)
	}
	if i.Password != nil {
		errs = appendPasswordErrors(errs, *i.Password)
	}
	if i.Role != nil && !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "invalid role"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// touchesPrivileges reports whether the update changes role or domain.
func (i UpdateInput) touchesPrivileges() bool {
	return i.Role != nil || i.DomainID != nil
}

// ListInput narrows a user listing.
type ListInput struct {
	Role     *domain.UserRole
	DomainID *uuid.UUID
	Limit    int
	Offset   int
}

func appendUsernameErrors(errs []domain.FieldError, username string) []domain.FieldError {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		return append(errs, domain.FieldError{Field: "username", Message: "required"})
	case n < minUsername || n > maxUsername:
		return append(errs, domain.FieldError{Field: "username", Message: "must be 3-50 characters"})
	case !usernameRe.MatchString(username):
		return append(errs, domain.FieldError{Field: "username", Message: "may contain only letters, digits and underscores"})
	}
	return errs
}

func appendEmailErrors(errs []domain.FieldError, email string) []domain.FieldError {
	if email == "" {
		return append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if len(email) > maxEmail {
		return append(errs, domain.FieldError{Field: "email", Message: "max 100 characters"})
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid email address"})
	}
	return errs
}

func appendPasswordErrors(errs []domain.FieldError, password string) []domain.FieldError {
	n := utf8.RuneCountInString(password)
	if n < minPassword || n > maxPassword {
		return append(errs, domain.FieldError{Field: "password", Message: "must be 6-128 characters"})
	}
	return errs
}
