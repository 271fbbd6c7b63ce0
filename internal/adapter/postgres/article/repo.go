// Package article implements the Article repository using PostgreSQL.
// Fixed statements are raw SQL; listings are assembled with squirrel because
// their filters are optional.
package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// Repo provides article persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new article repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const articleColumns = `a.id, a.title, a.content, a.domain_id, a.author_id, a.date,
	a.likes_count, a.pending_validation, a.validated_by, a.validated_at, a.archived, a.updated_at,
	COALESCE((SELECT array_agg(e.user_id ORDER BY e.granted_at) FROM article_editors e WHERE e.article_id = a.id), '{}')`

const returningColumns = `id, title, content, domain_id, author_id, date,
	likes_count, pending_validation, validated_by, validated_at, archived, updated_at,
	COALESCE((SELECT array_agg(e.user_id ORDER BY e.granted_at) FROM article_editors e WHERE e.article_id = articles.id), '{}')`

const getByIDSQL = `
SELECT ` + articleColumns + `
FROM articles a
WHERE a.id = $1`

const getForUpdateSQL = getByIDSQL + `
FOR UPDATE OF a`

const createSQL = `
INSERT INTO articles (id, title, content, domain_id, author_id, date, pending_validation,
                      validated_by, validated_at, archived, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $6)
RETURNING ` + returningColumns

const setValidatedSQL = `
UPDATE articles
SET pending_validation = false, validated_by = $2, validated_at = $3, updated_at = now()
WHERE id = $1
RETURNING ` + returningColumns

const setArchivedSQL = `
UPDATE articles
SET archived = $2, updated_at = now()
WHERE id = $1
RETURNING ` + returningColumns

const deleteSQL = `DELETE FROM articles WHERE id = $1`

const addEditorSQL = `
INSERT INTO article_editors (article_id, user_id)
VALUES ($1, $2)
ON CONFLICT (article_id, user_id) DO NOTHING`

const archiveOlderThanSQL = `
UPDATE articles
SET archived = true, updated_at = now()
WHERE archived = false AND date < $1
RETURNING id`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an article with its editors.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	return postgres.RetryRead(ctx, func(ctx context.Context) (*domain.Article, error) {
		a, err := scanArticle(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByIDSQL, id))
		if err != nil {
			return nil, postgres.MapError(err, "article", id)
		}
		return a, nil
	})
}

// GetForUpdate loads an article and locks its row until the surrounding
// transaction ends, so concurrent transitions on it serialize.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	a, err := scanArticle(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "article", id)
	}
	return a, nil
}

// List returns one page of articles matching f, newest first, together
// with the total number of matches.
func (r *Repo) List(ctx context.Context, f domain.ArticleFilter) (*domain.ArticlePage, error) {
	limit, offset := postgres.ClampPage(f.Limit, f.Offset)
	where := filterWhere(f)

	countSQL, countArgs, err := postgres.Builder.Select("count(*)").From("articles a").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count articles: %w", err)
	}
	listSQL, listArgs, err := postgres.Builder.Select(articleColumns).From("articles a").Where(where).
		OrderBy("a.date DESC", "a.id DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list articles: %w", err)
	}

	return postgres.RetryRead(ctx, func(ctx context.Context) (*domain.ArticlePage, error) {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		var total int
		if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, fmt.Errorf("count articles: %w", err)
		}

		rows, err := q.Query(ctx, listSQL, listArgs...)
		if err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
		defer rows.Close()

		articles := []*domain.Article{}
		for rows.Next() {
			a, err := scanArticle(rows)
			if err != nil {
				return nil, fmt.Errorf("scan article: %w", err)
			}
			articles = append(articles, a)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}

		return &domain.ArticlePage{Articles: articles, Total: total}, nil
	})
}

func filterWhere(f domain.ArticleFilter) squirrel.And {
	where := squirrel.And{}
	if f.DomainID != nil {
		where = append(where, squirrel.Eq{"a.domain_id": *f.DomainID})
	}
	if f.PendingValidation != nil {
		where = append(where, squirrel.Eq{"a.pending_validation": *f.PendingValidation})
	}
	if f.Archived != nil {
		where = append(where, squirrel.Eq{"a.archived": *f.Archived})
	}
	if f.OwnedBy != nil {
		where = append(where, squirrel.Expr(
			"(a.author_id = ? OR EXISTS (SELECT 1 FROM article_editors e WHERE e.article_id = a.id AND e.user_id = ?))",
			*f.OwnedBy, *f.OwnedBy,
		))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"a.title": pattern},
			squirrel.ILike{"a.content": pattern},
		})
	}
	return where
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an article and returns it as stored.
func (r *Repo) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}

	created, err := scanArticle(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL,
		a.ID, a.Title, a.Content, a.DomainID, a.AuthorID, a.Date, a.PendingValidation,
		a.ValidatedBy, a.ValidatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "article", a.ID)
	}
	return created, nil
}

// Update applies the non-nil content fields of p. With p.Reopen the
// article goes back to review and loses its validation stamp.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.ArticleUpdateParams) (*domain.Article, error) {
	b := postgres.Builder.Update("articles").Set("updated_at", squirrel.Expr("now()"))
	if p.Title != nil {
		b = b.Set("title", *p.Title)
	}
	if p.Content != nil {
		b = b.Set("content", *p.Content)
	}
	if p.DomainID != nil {
		b = b.Set("domain_id", *p.DomainID)
	}
	if p.Reopen {
		b = b.Set("pending_validation", true).Set("validated_by", nil).Set("validated_at", nil)
	}

	query, args, err := b.Where(squirrel.Eq{"id": id}).Suffix("RETURNING " + returningColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update article: %w", err)
	}

	a, err := scanArticle(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "article", id)
	}
	return a, nil
}

// SetValidated publishes an article and stamps the validator.
func (r *Repo) SetValidated(ctx context.Context, id, validatorID uuid.UUID, at time.Time) (*domain.Article, error) {
	a, err := scanArticle(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, setValidatedSQL, id, validatorID, at))
	if err != nil {
		return nil, postgres.MapError(err, "article", id)
	}
	return a, nil
}

// SetArchived sets the archived flag.
func (r *Repo) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*domain.Article, error) {
	a, err := scanArticle(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, setArchivedSQL, id, archived))
	if err != nil {
		return nil, postgres.MapError(err, "article", id)
	}
	return a, nil
}

// Delete removes an article row. Likes and editor grants cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "article", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AddEditor grants userID edit access. It reports false when the grant
// already existed.
func (r *Repo) AddEditor(ctx context.Context, articleID, userID uuid.UUID) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, addEditorSQL, articleID, userID)
	if err != nil {
		return false, postgres.MapError(err, "article_editor", articleID)
	}
	return tag.RowsAffected() > 0, nil
}

// ArchiveOlderThan archives every live article dated before cutoff and
// returns their ids.
func (r *Repo) ArchiveOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, archiveOlderThanSQL, cutoff)
	if err != nil {
		return nil, fmt.Errorf("archive articles before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("archive articles before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.DomainID, &a.AuthorID, &a.Date,
		&a.LikesCount, &a.PendingValidation, &a.ValidatedBy, &a.ValidatedAt, &a.Archived, &a.UpdatedAt,
		&a.Editors,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
