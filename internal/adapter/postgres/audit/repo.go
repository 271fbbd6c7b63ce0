// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const auditColumns = `id, user_id, action, entity_type, entity_id, client_identity, client_agent, created_at`

const createSQL = `
INSERT INTO audit_log (id, user_id, action, entity_type, entity_id, client_identity, client_agent, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`

const listRecentSQL = `
SELECT ` + auditColumns + `
FROM audit_log
ORDER BY created_at DESC, id DESC
LIMIT $1`

// Create appends an audit entry. It always writes on the pool, never in a
// transaction carried by ctx: an audit row must not share the fate of the
// operation it describes.
func (r *Repo) Create(ctx context.Context, e domain.AuditEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, createSQL,
		e.ID, e.UserID, string(e.Action), string(e.EntityType), e.EntityID,
		e.ClientIdentity, e.ClientAgent, e.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "audit_entry", e.ID)
	}
	return nil
}

// ListRecent returns the newest entries first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return postgres.RetryRead(ctx, func(ctx context.Context) ([]domain.AuditEntry, error) {
		rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listRecentSQL, limit)
		if err != nil {
			return nil, fmt.Errorf("list audit entries: %w", err)
		}
		defer rows.Close()

		entries := []domain.AuditEntry{}
		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				return nil, fmt.Errorf("scan audit entry: %w", err)
			}
			entries = append(entries, e)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("list audit entries: %w", err)
		}
		return entries, nil
	})
}

func scanEntry(row pgx.Row) (domain.AuditEntry, error) {
	var (
		e          domain.AuditEntry
		action     string
		entityType *string
	)
	err := row.Scan(&e.ID, &e.UserID, &action, &entityType, &e.EntityID, &e.ClientIdentity, &e.ClientAgent, &e.CreatedAt)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	e.Action = domain.AuditAction(action)
	if entityType != nil {
		e.EntityType = domain.EntityType(*entityType)
	}
	return e, nil
}
