package article

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/authz"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/principal"
)

// Get returns an article visible to the caller. Articles the caller may not
// read are reported as not found.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	actor, err := principal.Optional(ctx, s.users)
	if err != nil {
		return nil, err
	}

	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("article.Get: %w", err)
	}
	if !authz.Authorize(actor, authz.ActionReadArticle, authz.OnArticle(a)).Allowed {
		return nil, fmt.Errorf("article.Get: article %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

// ListPublic returns published, non-archived articles, newest first.
func (s *Service) ListPublic(ctx context.Context, q PublicQuery) (*domain.ArticlePage, error) {
	f := domain.PublicFilter()
	f.Search = strings.TrimSpace(q.Search)
	f.DomainID = q.DomainID
	f.Limit, f.Offset = clampPage(q.Limit, q.Offset)

	key := feedKey(f)
	gen, cacheable := s.feedGeneration(ctx)
	if cacheable {
		if page, ok := s.cachedPage(ctx, gen, key); ok {
			return page, nil
		}
	}

	page, err := s.articles.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("article.ListPublic: %w", err)
	}
	if cacheable {
		s.storePage(ctx, gen, key, page)
	}
	return page, nil
}

func feedKey(f domain.ArticleFilter) string {
	d := "*"
	if f.DomainID != nil {
		d = f.DomainID.String()
	}
	return fmt.Sprintf("d=%s:l=%d:o=%d:q=%s", d, f.Limit, f.Offset, strings.ToLower(f.Search))
}

// feedGeneration reads the cache generation before the feed is loaded. A
// page is only stored under the generation it was read in.
func (s *Service) feedGeneration(ctx context.Context) (int64, bool) {
	if s.feed == nil {
		return 0, false
	}
	gen, err := s.feed.Generation(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "feed cache read failed", slog.String("error", err.Error()))
		return 0, false
	}
	return gen, true
}

func (s *Service) cachedPage(ctx context.Context, gen int64, key string) (*domain.ArticlePage, bool) {
	raw, ok, err := s.feed.Get(ctx, gen, key)
	if err != nil {
		s.log.WarnContext(ctx, "feed cache read failed", slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var page domain.ArticlePage
	if err := json.Unmarshal(raw, &page); err != nil {
		s.log.WarnContext(ctx, "feed cache entry corrupt", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return &page, true
}

func (s *Service) storePage(ctx context.Context, gen int64, key string, page *domain.ArticlePage) {
	raw, err := json.Marshal(page)
	if err != nil {
		s.log.WarnContext(ctx, "feed cache encode failed", slog.String("error", err.Error()))
		return
	}
	if err := s.feed.Set(ctx, gen, key, raw); err != nil {
		s.log.WarnContext(ctx, "feed cache write failed", slog.String("error", err.Error()))
	}
}

// ListForActor returns the articles the caller manages: every article for
// super administrators, the own domain for domain administrators, and
// authored or editable articles for contributors.
func (s *Service) ListForActor(ctx context.Context, q ListQuery) (*domain.ArticlePage, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}

	f := domain.ArticleFilter{Search: strings.TrimSpace(q.Search)}
	f.Limit, f.Offset = clampPage(q.Limit, q.Offset)

	switch {
	case actor.Role.AtLeast(domain.UserRoleDomainAdmin):
		if err := authz.Authorize(actor, authz.ActionListModeration, authz.Resource{}).Err(); err != nil {
			return nil, err
		}
		f.DomainID = authz.ScopeDomain(actor)
	default:
		if err := authz.Authorize(actor, authz.ActionListOwnArticles, authz.Resource{}).Err(); err != nil {
			return nil, err
		}
		f.OwnedBy = &actor.UserID
	}

	page, err := s.articles.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("article.ListForActor: %w", err)
	}
	return page, nil
}

// ListPending returns drafts awaiting review in the moderator's scope.
func (s *Service) ListPending(ctx context.Context, q ListQuery) (*domain.ArticlePage, error) {
	pending, archived := true, false
	page, err := s.listModeration(ctx, q, domain.ArticleFilter{PendingValidation: &pending, Archived: &archived})
	if err != nil {
		return nil, fmt.Errorf("article.ListPending: %w", err)
	}
	return page, nil
}

// ListArchived returns archived articles in the moderator's scope.
func (s *Service) ListArchived(ctx context.Context, q ListQuery) (*domain.ArticlePage, error) {
	archived := true
	page, err := s.listModeration(ctx, q, domain.ArticleFilter{Archived: &archived})
	if err != nil {
		return nil, fmt.Errorf("article.ListArchived: %w", err)
	}
	return page, nil
}

func (s *Service) listModeration(ctx context.Context, q ListQuery, f domain.ArticleFilter) (*domain.ArticlePage, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionListModeration, authz.Resource{}).Err(); err != nil {
		return nil, err
	}

	f.DomainID = authz.ScopeDomain(actor)
	f.Search = strings.TrimSpace(q.Search)
	f.Limit, f.Offset = clampPage(q.Limit, q.Offset)
	return s.articles.List(ctx, f)
}
