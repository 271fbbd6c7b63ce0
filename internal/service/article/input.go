package article

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

const (
	minTitle   = 5
	maxTitle   = 200
	minContent = 10
	maxContent = 5000
)

var (
	titlePolicy   = bluemonday.StrictPolicy()
	contentPolicy = bluemonday.UGCPolicy()
)

// cleanTitle strips every tag. Titles are plain text, so entities escaped by
// the policy are decoded back.
func cleanTitle(s string) string {
	return strings.TrimSpace(html.UnescapeString(titlePolicy.Sanitize(strings.TrimSpace(s))))
}

// cleanContent keeps user-generated-content markup and drops anything unsafe.
func cleanContent(s string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(strings.TrimSpace(s)))
}

func appendTitleErrors(errs []domain.FieldError, title string) []domain.FieldError {
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	case n < minTitle || n > maxTitle:
		errs = append(errs, domain.FieldError{Field: "title", Message: "must be between 5 and 200 characters"})
	}
	return errs
}

func appendContentErrors(errs []domain.FieldError, content string) []domain.FieldError {
	n := utf8.RuneCountInString(content)
	switch {
	case n == 0:
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	case n < minContent || n > maxContent:
		errs = append(errs, domain.FieldError{Field: "content", Message: "must be between 10 and 5000 characters"})
	}
	return errs
}

// CreateInput holds parameters for drafting an article. DomainID is only
// honoured for super administrators; everyone else writes into their own
// domain.
type CreateInput struct {
	Title    string
	Content  string
	DomainID *uuid.UUID
}

func (i *CreateInput) normalize() {
	i.Title = cleanTitle(i.Title)
	i.Content = cleanContent(i.Content)
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError
	errs = appendTitleErrors(errs, i.Title)
	errs = appendContentErrors(errs, i.Content)
	if i.DomainID != nil && *i.DomainID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "domain_id", Message: "invalid domain"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for editing an article. Nil fields are left
// unchanged.
type UpdateInput struct {
	ArticleID uuid.UUID
	Title     *string
	Content   *string
	DomainID  *uuid.UUID
}

func (i *UpdateInput) normalize() {
	if i.Title != nil {
		t := cleanTitle(*i.Title)
		i.Title = &t
	}
	if i.Content != nil {
		c := cleanContent(*i.Content)
		i.Content = &c
	}
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.ArticleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title != nil {
		errs = appendTitleErrors(errs, *i.Title)
	}
	if i.Content != nil {
		errs = appendContentErrors(errs, *i.Content)
	}
	if i.DomainID != nil && *i.DomainID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "domain_id", Message: "invalid domain"})
	}
	if i.Title == nil && i.Content == nil && i.DomainID == nil && len(errs) == 0 {
		errs = append(errs, domain.FieldError{Field: "input", Message: "nothing to update"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GrantEditInput names the contributor receiving edit access.
type GrantEditInput struct {
	ArticleID uuid.UUID
	UserID    uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i GrantEditInput) Validate() error {
	var errs []domain.FieldError
	if i.ArticleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Page limits for article listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PublicQuery narrows the public feed.
type PublicQuery struct {
	Search   string
	DomainID *uuid.UUID
	Limit    int
	Offset   int
}

// ListQuery narrows actor-scoped and moderation listings.
type ListQuery struct {
	Search string
	Limit  int
	Offset int
}
