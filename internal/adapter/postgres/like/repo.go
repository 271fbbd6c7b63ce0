// Package like implements the like ledger using PostgreSQL.
package like

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// Repo provides like persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new like repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// The advisory lock is keyed by (article, identity) and released at the
// end of the transaction. It covers the window where neither the row nor
// the unique constraint exists yet.
const lockSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2, 0))`

const insertSQL = `
INSERT INTO likes (article_id, client_identity)
VALUES ($1, $2)
ON CONFLICT (article_id, client_identity) DO NOTHING`

const deleteSQL = `DELETE FROM likes WHERE article_id = $1 AND client_identity = $2`

const incrementSQL = `
UPDATE articles SET likes_count = likes_count + 1
WHERE id = $1
RETURNING likes_count`

const decrementSQL = `
UPDATE articles SET likes_count = GREATEST(likes_count - 1, 0)
WHERE id = $1
RETURNING likes_count`

// Toggle flips the like of identity on articleID. It must run inside a
// transaction: the lock, the row change and the counter change commit
// together.
func (r *Repo) Toggle(ctx context.Context, articleID uuid.UUID, identity string) (*domain.LikeResult, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("like toggle: must run in a transaction")
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, lockSQL, articleID.String(), identity); err != nil {
		return nil, postgres.MapError(err, "like", articleID)
	}

	tag, err := q.Exec(ctx, insertSQL, articleID, identity)
	if err != nil {
		return nil, postgres.MapError(err, "like", articleID)
	}

	res := &domain.LikeResult{ArticleID: articleID, Action: domain.LikeActionLiked}
	counterSQL := incrementSQL

	if tag.RowsAffected() == 0 {
		if _, err := q.Exec(ctx, deleteSQL, articleID, identity); err != nil {
			return nil, postgres.MapError(err, "like", articleID)
		}
		res.Action = domain.LikeActionUnliked
		counterSQL = decrementSQL
	}

	if err := q.QueryRow(ctx, counterSQL, articleID).Scan(&res.LikesCount); err != nil {
		return nil, postgres.MapError(err, "article", articleID)
	}
	return res, nil
}
