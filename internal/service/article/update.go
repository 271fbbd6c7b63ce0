package article

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/newsroom-backend/internal/authz"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/principal"
)

// Update edits an article's title, content or domain. The review state is
// kept unless the revalidate-on-edit policy is enabled and the editor is not
// a moderator of the article's domain.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Article, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		updated   *domain.Article
		wasPublic bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.articles.GetForUpdate(txCtx, input.ArticleID)
		if err != nil {
			return err
		}
		if err := authorizeOn(actor, authz.ActionUpdateArticle, current); err != nil {
			return err
		}

		params := domain.ArticleUpdateParams{Title: input.Title, Content: input.Content}
		if input.DomainID != nil && *input.DomainID != current.DomainID {
			if !actor.Role.IsSuperAdmin() {
				return domain.Deny(domain.ReasonForbidden)
			}
			if err := s.requireDomain(txCtx, *input.DomainID); err != nil {
				return err
			}
			params.DomainID = input.DomainID
		}
		if s.cfg.RevalidateOnEdit && !current.PendingValidation && !moderates(actor, current) {
			params.Reopen = true
		}

		wasPublic = current.IsPublic()
		updated, err = s.articles.Update(txCtx, current.ID, params)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("article.Update: %w", err)
	}

	s.record(ctx, actor, domain.AuditActionUpdate, updated.ID)
	if wasPublic || updated.IsPublic() {
		s.invalidateFeed(ctx)
	}

	s.log.InfoContext(ctx, "article updated",
		slog.String("article_id", updated.ID.String()),
		slog.String("state", updated.State().String()),
	)
	return updated, nil
}

// moderates reports whether actor reviews articles of a's domain.
func moderates(actor *domain.Actor, a *domain.Article) bool {
	if actor.Role.IsSuperAdmin() {
		return true
	}
	return actor.Role == domain.UserRoleDomainAdmin && actor.InDomain(a.DomainID)
}
