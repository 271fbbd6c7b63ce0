// Package like implements anonymous per-client like toggles on published
// articles.
package like

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// MaxIdentityLength bounds the stored client identity.
const MaxIdentityLength = 255

type likeRepo interface {
	Toggle(ctx context.Context, articleID uuid.UUID, identity string) (*domain.LikeResult, error)
}

type articleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// feedInvalidator drops cached public feed pages, which carry like counts.
type feedInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service implements the like ledger.
type Service struct {
	log      *slog.Logger
	likes    likeRepo
	articles articleRepo
	tx       txManager
	feed     feedInvalidator
}

// NewService creates a new like service. feed may be nil.
func NewService(
	logger *slog.Logger,
	likes likeRepo,
	articles articleRepo,
	tx txManager,
	feed feedInvalidator,
) *Service {
	return &Service{
		log:      logger.With("service", "like"),
		likes:    likes,
		articles: articles,
		tx:       tx,
		feed:     feed,
	}
}

// Toggle likes the article for identity, or removes the like if one exists.
// Only publicly visible articles can be liked; any other article is
// reported as not found.
func (s *Service) Toggle(ctx context.Context, articleID uuid.UUID, identity string) (*domain.LikeResult, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, domain.NewValidationError("client_identity", "required")
	}
	if utf8.RuneCountInString(identity) > MaxIdentityLength {
		return nil, domain.NewValidationError("client_identity", "too long")
	}

	var res *domain.LikeResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.articles.GetByID(txCtx, articleID)
		if err != nil {
			return err
		}
		if !a.IsPublic() {
			return fmt.Errorf("article %s: %w", articleID, domain.ErrNotFound)
		}

		res, err = s.likes.Toggle(txCtx, articleID, identity)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("like.Toggle: %w", err)
	}

	if s.feed != nil {
		if err := s.feed.Invalidate(ctx); err != nil {
			s.log.WarnContext(ctx, "feed cache invalidation failed", slog.String("error", err.Error()))
		}
	}

	s.log.DebugContext(ctx, "like toggled",
		slog.String("article_id", articleID.String()),
		slog.String("action", res.Action.String()),
		slog.Int("likes_count", res.LikesCount),
	)
	return res, nil
}
