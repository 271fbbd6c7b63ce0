package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/authz"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/principal"
)

// Validate publishes a draft. Validating an already validated article is a
// no-op that returns it unchanged and records nothing.
func (s *Service) Validate(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}

	var (
		result  *domain.Article
		changed bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.articles.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if err := authorizeOn(actor, authz.ActionValidateArticle, current); err != nil {
			return err
		}
		if !current.PendingValidation {
			result = current
			return nil
		}

		result, err = s.articles.SetValidated(txCtx, current.ID, actor.UserID, s.now().UTC())
		changed = err == nil
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("article.Validate: %w", err)
	}

	if changed {
		s.record(ctx, actor, domain.AuditActionValidate, result.ID)
		if result.IsPublic() {
			s.invalidateFeed(ctx)
		}
		s.log.InfoContext(ctx, "article validated", slog.String("article_id", result.ID.String()))
	}
	return result, nil
}

// ToggleArchive flips the archived flag. Archiving requires archive rights
// and unarchiving requires unarchive rights on the article.
func (s *Service) ToggleArchive(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}

	var (
		result *domain.Article
		action domain.AuditAction
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.articles.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		check := authz.ActionArchiveArticle
		action = domain.AuditActionArchive
		if current.Archived {
			check = authz.ActionUnarchiveArticle
			action = domain.AuditActionUnarchive
		}
		if err := authorizeOn(actor, check, current); err != nil {
			return err
		}

		result, err = s.articles.SetArchived(txCtx, current.ID, !current.Archived)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("article.ToggleArchive: %w", err)
	}

	s.record(ctx, actor, action, result.ID)
	if !result.PendingValidation {
		s.invalidateFeed(ctx)
	}

	s.log.InfoContext(ctx, "article archive toggled",
		slog.String("article_id", result.ID.String()),
		slog.Bool("archived", result.Archived),
	)
	return result, nil
}

// DeleteResult describes how an article was removed.
type DeleteResult struct {
	// Hard is true when the row was removed. Otherwise the article was
	// archived and Article holds its new state.
	Hard    bool
	Article *domain.Article
}

// Delete removes an article. Super administrators delete the row; everyone
// else with modify rights archives it instead. Deleting an archived article
// again changes nothing and records nothing.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}

	var (
		res       DeleteResult
		wasPublic bool
		changed   bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.articles.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		wasPublic = current.IsPublic()

		if actor.Role.IsSuperAdmin() {
			if err := authorizeOn(actor, authz.ActionHardDeleteArticle, current); err != nil {
				return err
			}
			res.Hard = true
			changed = true
			return s.articles.Delete(txCtx, current.ID)
		}

		if err := authorizeOn(actor, authz.ActionDeleteArticle, current); err != nil {
			return err
		}
		if current.Archived {
			res.Article = current
			return nil
		}
		changed = true
		res.Article, err = s.articles.SetArchived(txCtx, current.ID, true)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("article.Delete: %w", err)
	}
	if !changed {
		return &res, nil
	}

	s.record(ctx, actor, domain.AuditActionDelete, id)
	if wasPublic {
		s.invalidateFeed(ctx)
	}

	s.log.InfoContext(ctx, "article deleted",
		slog.String("article_id", id.String()),
		slog.Bool("hard", res.Hard),
	)
	return &res, nil
}

// GrantEdit gives a contributor edit access to an article. Granting twice
// is a no-op.
func (s *Service) GrantEdit(ctx context.Context, input GrantEditInput) (*domain.Article, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		result *domain.Article
		added  bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.articles.GetForUpdate(txCtx, input.ArticleID)
		if err != nil {
			return err
		}
		if err := authorizeOn(actor, authz.ActionGrantEditAccess, current); err != nil {
			return err
		}

		target, err := s.users.GetByID(txCtx, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewValidationError("user_id", "user does not exist")
			}
			return err
		}
		if target.Role != domain.UserRoleContributor {
			return domain.NewValidationError("user_id", "user must be a contributor")
		}

		added, err = s.articles.AddEditor(txCtx, current.ID, target.ID)
		if err != nil {
			return err
		}
		if !added {
			result = current
			return nil
		}
		result, err = s.articles.GetByID(txCtx, current.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("article.GrantEdit: %w", err)
	}

	if added {
		s.record(ctx, actor, domain.AuditActionUpdate, result.ID)
		s.log.InfoContext(ctx, "article editor granted",
			slog.String("article_id", result.ID.String()),
			slog.String("editor_id", input.UserID.String()),
		)
	}
	return result, nil
}

// authorizeOn checks action on a. When the actor may not even read a, the
// article is reported as not found so its existence does not leak. Domain
// administrators keep the precise denial, and a missing domain assignment is
// reported as such since it says nothing about the article.
func authorizeOn(actor *domain.Actor, action authz.Action, a *domain.Article) error {
	d := authz.Authorize(actor, action, authz.OnArticle(a))
	if d.Allowed {
		return nil
	}
	if actor.Role != domain.UserRoleDomainAdmin && d.Reason != domain.ReasonNoDomainAssigned &&
		!authz.Authorize(actor, authz.ActionReadArticle, authz.OnArticle(a)).Allowed {
		return fmt.Errorf("article %s: %w", a.ID, domain.ErrNotFound)
	}
	return d.Err()
}
