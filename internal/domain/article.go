package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// ArticleState is the lifecycle state derived from an article's flags.
type ArticleState string

const (
	ArticleStateDraft     ArticleState = "draft"
	ArticleStatePublished ArticleState = "published"
	ArticleStateArchived  ArticleState = "archived"
)

func (s ArticleState) String() string { return string(s) }

// Article is a piece of content authored within a domain.
// ValidatedBy and ValidatedAt are either both set or both nil.
type Article struct {
	ID                uuid.UUID
	Title             string
	Content           string
	DomainID          uuid.UUID
	AuthorID          uuid.UUID
	Date              time.Time
	Editors           []uuid.UUID
	LikesCount        int
	PendingValidation bool
	ValidatedBy       *uuid.UUID
	ValidatedAt       *time.Time
	Archived          bool
	UpdatedAt         time.Time
}

// IsPublic reports whether the article passes the public listing predicate.
func (a *Article) IsPublic() bool {
	return !a.PendingValidation && !a.Archived
}

// State maps the independent flags onto the lifecycle states.
func (a *Article) State() ArticleState {
	switch {
	case a.Archived:
		return ArticleStateArchived
	case a.PendingValidation:
		return ArticleStateDraft
	default:
		return ArticleStatePublished
	}
}

// IsAuthor reports whether userID authored the article.
func (a *Article) IsAuthor(userID uuid.UUID) bool {
	return a.AuthorID == userID
}

// IsEditor reports whether userID was granted edit access.
func (a *Article) IsEditor(userID uuid.UUID) bool {
	return slices.Contains(a.Editors, userID)
}

// ArticleUpdateParams carries the mutable content fields; nil means unchanged.
type ArticleUpdateParams struct {
	Title    *string
	Content  *string
	DomainID *uuid.UUID
	// Reopen puts the article back into review and clears the validation stamp.
	Reopen bool
}

// ArticleFilter narrows article listings. Nil pointers mean "any".
type ArticleFilter struct {
	DomainID          *uuid.UUID
	PendingValidation *bool
	Archived          *bool
	// OwnedBy matches articles authored by, or editable by, the given user.
	OwnedBy *uuid.UUID
	Search  string
	Limit   int
	Offset  int
}

// PublicFilter returns a filter applying the public visibility predicate.
func PublicFilter() ArticleFilter {
	f := false
	return ArticleFilter{PendingValidation: &f, Archived: &f}
}

// ArticlePage is a page of articles with the total number of matches.
type ArticlePage struct {
	Articles []*Article
	Total    int
}
