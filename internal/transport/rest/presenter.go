package rest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/audit"
	"github.com/heartmarshall/newsroom-backend/internal/transport/dataloader"
)

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	DomainID  *string   `json:"domain_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		DomainID:  idString(u.DomainID),
		CreatedAt: u.CreatedAt,
	}
}

type domainResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func toDomainResponse(d *domain.Domain) domainResponse {
	return domainResponse{ID: d.ID.String(), Name: d.Name, Color: d.Color, CreatedAt: d.CreatedAt}
}

type articleResponse struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	DomainID          string     `json:"domain_id"`
	DomainName        string     `json:"domain_name,omitempty"`
	DomainColor       string     `json:"domain_color,omitempty"`
	AuthorID          string     `json:"author_id"`
	AuthorUsername    string     `json:"author_username,omitempty"`
	Date              time.Time  `json:"date"`
	Editors           []string   `json:"editors"`
	LikesCount        int        `json:"likes_count"`
	PendingValidation bool       `json:"pending_validation"`
	ValidatedBy       *string    `json:"validated_by"`
	ValidatedAt       *time.Time `json:"validated_at"`
	Archived          bool       `json:"archived"`
	State             string     `json:"state"`
}

type pageResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// articlePresenter renders articles with display names resolved through the
// request's loaders. Name lookups are best-effort.
type articlePresenter struct {
	log *slog.Logger
}

func (p articlePresenter) one(ctx context.Context, a *domain.Article) articleResponse {
	return p.many(ctx, []*domain.Article{a})[0]
}

func (p articlePresenter) many(ctx context.Context, list []*domain.Article) []articleResponse {
	out := make([]articleResponse, len(list))
	for i, a := range list {
		out[i] = toArticleResponse(a)
	}

	loaders := dataloader.FromContext(ctx)
	if loaders == nil || len(list) == 0 {
		return out
	}

	domainIDs := make([]uuid.UUID, len(list))
	authorIDs := make([]uuid.UUID, len(list))
	for i, a := range list {
		domainIDs[i] = a.DomainID
		authorIDs[i] = a.AuthorID
	}

	domainThunk := loaders.DomainByID.LoadMany(ctx, domainIDs)
	authorThunk := loaders.UserByID.LoadMany(ctx, authorIDs)

	domains, errs := domainThunk()
	if firstErr(errs) != nil {
		p.log.WarnContext(ctx, "resolve domain names", slog.String("error", firstErr(errs).Error()))
	}
	authors, errs := authorThunk()
	if firstErr(errs) != nil {
		p.log.WarnContext(ctx, "resolve author names", slog.String("error", firstErr(errs).Error()))
	}

	for i := range out {
		if i < len(domains) && domains[i] != nil {
			out[i].DomainName = domains[i].Name
			out[i].DomainColor = domains[i].Color
		}
		if i < len(authors) && authors[i] != nil {
			out[i].AuthorUsername = authors[i].Username
		}
	}
	return out
}

func firstErr(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func toArticleResponse(a *domain.Article) articleResponse {
	editors := make([]string, len(a.Editors))
	for i, id := range a.Editors {
		editors[i] = id.String()
	}
	return articleResponse{
		ID:                a.ID.String(),
		Title:             a.Title,
		Content:           a.Content,
		DomainID:          a.DomainID.String(),
		AuthorID:          a.AuthorID.String(),
		Date:              a.Date,
		Editors:           editors,
		LikesCount:        a.LikesCount,
		PendingValidation: a.PendingValidation,
		ValidatedBy:       idString(a.ValidatedBy),
		ValidatedAt:       a.ValidatedAt,
		Archived:          a.Archived,
		State:             a.State().String(),
	}
}

type auditResponse struct {
	ID             string    `json:"id"`
	UserID         *string   `json:"user_id"`
	Action         string    `json:"action"`
	EntityType     string    `json:"entity_type,omitempty"`
	EntityID       *string   `json:"entity_id"`
	ClientIdentity string    `json:"client_identity"`
	ClientAgent    string    `json:"client_agent"`
	Browser        string    `json:"browser"`
	BrowserVersion string    `json:"browser_version,omitempty"`
	OS             string    `json:"os"`
	Device         string    `json:"device"`
	CreatedAt      time.Time `json:"created_at"`
}

func toAuditResponse(e audit.Entry) auditResponse {
	return auditResponse{
		ID:             e.ID.String(),
		UserID:         idString(e.UserID),
		Action:         e.Action.String(),
		EntityType:     e.EntityType.String(),
		EntityID:       idString(e.EntityID),
		ClientIdentity: e.ClientIdentity,
		ClientAgent:    e.ClientAgent,
		Browser:        e.Agent.Browser,
		BrowserVersion: e.Agent.Version,
		OS:             e.Agent.OS,
		Device:         e.Agent.Device,
		CreatedAt:      e.CreatedAt,
	}
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
