package domains

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
	colorRe = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// CreateInput holds the parameters for creating a domain.
type CreateInput struct {
	Name  string
	Color string
}

func (i *CreateInput) normalize() {
	i.Name = domain.CollapseSpaces(i.Name)
	i.Color = strings.TrimSpace(i.Color)
	if i.Color == "" {
		i.Color = domain.DefaultDomainColor
	}
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError
	errs = appendNameErrors(errs, i.Name)
	errs = appendColorErrors(errs, i.Color)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the parameters for updating a domain. Nil fields are
// left unchanged.
type UpdateInput struct {
	ID    uuid.UUID
	Name  *string
	Color *string
}

func (i *UpdateInput) normalize() {
	if i.Name != nil {
		n := domain.CollapseSpaces(*i.Name)
		i.Name = &n
	}
	if i.Color != nil {
		c := strings.TrimSpace(*i.Color)
		i.Color = &c
	}
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name == nil && i.Color == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = appendNameErrors(errs, *i.Name)
	}
	if i.Color != nil {
		errs = appendColorErrors(errs, *i.Color)
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendNameErrors(errs []domain.FieldError, name string) []domain.FieldError {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return append(errs, domain.FieldError{Field: "name", Message: "required"})
	case n < 2 || n > 100:
		return append(errs, domain.FieldError{Field: "name", Message: "must be 2-100 characters"})
	case !nameRe.MatchString(name):
		return append(errs, domain.FieldError{Field: "name", Message: "may contain only letters, digits, spaces, hyphens and underscores"})
	}
	return errs
}

func appendColorErrors(errs []domain.FieldError, color string) []domain.FieldError {
	if !colorRe.MatchString(color) {
		return append(errs, domain.FieldError{Field: "color", Message: "must be a hex color like #3b82f6"})
	}
	return errs
}
