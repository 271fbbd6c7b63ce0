// Package article implements the article lifecycle: drafting, review,
// publication, archival, editor grants and the public feed.
package article

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/config"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

type articleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	List(ctx context.Context, f domain.ArticleFilter) (*domain.ArticlePage, error)
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	Update(ctx context.Context, id uuid.UUID, p domain.ArticleUpdateParams) (*domain.Article, error)
	SetValidated(ctx context.Context, id, validatorID uuid.UUID, at time.Time) (*domain.Article, error)
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*domain.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddEditor(ctx context.Context, articleID, userID uuid.UUID) (bool, error)
	ArchiveOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type domainRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error)
}

type auditRecorder interface {
	Record(ctx context.Context, e domain.AuditEntry)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// feedCache holds encoded public feed pages, namespaced by a generation
// that Invalidate advances.
type feedCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, key string) ([]byte, bool, error)
	Set(ctx context.Context, gen int64, key string, value []byte) error
	Invalidate(ctx context.Context) error
}

// Service implements the article lifecycle.
type Service struct {
	log      *slog.Logger
	articles articleRepo
	users    userRepo
	domains  domainRepo
	audit    auditRecorder
	tx       txManager
	feed     feedCache
	cfg      config.ArticlesConfig
	now      func() time.Time
}

// NewService creates a new article service. feed may be nil, in which case
// the public feed is always read from the repository.
func NewService(
	logger *slog.Logger,
	articles articleRepo,
	users userRepo,
	domains domainRepo,
	audit auditRecorder,
	tx txManager,
	feed feedCache,
	cfg config.ArticlesConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "article"),
		articles: articles,
		users:    users,
		domains:  domains,
		audit:    audit,
		tx:       tx,
		feed:     feed,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *Service) record(ctx context.Context, actor *domain.Actor, action domain.AuditAction, id uuid.UUID) {
	s.audit.Record(ctx, domain.AuditEntry{
		UserID:     &actor.UserID,
		Action:     action,
		EntityType: domain.EntityTypeArticle,
		EntityID:   &id,
	})
}

// invalidateFeed drops cached feed pages. Failures only cost freshness
// until the entries expire, so they are logged and swallowed.
func (s *Service) invalidateFeed(ctx context.Context) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "feed cache invalidation failed", slog.String("error", err.Error()))
	}
}
