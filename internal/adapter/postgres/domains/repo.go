// Package domains implements the credential store for domains using PostgreSQL.
package domains

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// Repo provides domain persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new domains repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const domainColumns = `id, name, color, created_at`

const listSQL = `
SELECT ` + domainColumns + `
FROM domains
ORDER BY lower(name)`

const getByIDSQL = `
SELECT ` + domainColumns + `
FROM domains
WHERE id = $1`

const getByIDsSQL = `
SELECT ` + domainColumns + `
FROM domains
WHERE id = ANY($1)`

const createSQL = `
INSERT INTO domains (id, name, color)
VALUES ($1, $2, $3)
RETURNING ` + domainColumns

const updateSQL = `
UPDATE domains SET name = $2, color = $3
WHERE id = $1
RETURNING ` + domainColumns

const deleteSQL = `DELETE FROM domains WHERE id = $1`

const countArticlesSQL = `SELECT count(*) FROM articles WHERE domain_id = $1`

// List returns every domain ordered by name.
func (r *Repo) List(ctx context.Context) ([]*domain.Domain, error) {
	return postgres.RetryRead(ctx, func(ctx context.Context) ([]*domain.Domain, error) {
		rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listSQL)
		if err != nil {
			return nil, fmt.Errorf("list domains: %w", err)
		}
		defer rows.Close()
		return scanDomains(rows)
	})
}

// GetByID returns a domain by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	return postgres.RetryRead(ctx, func(ctx context.Context) (*domain.Domain, error) {
		d, err := scanDomain(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByIDSQL, id))
		if err != nil {
			return nil, postgres.MapError(err, "domain", id)
		}
		return d, nil
	})
}

// GetByIDs returns the domains with the given ids. Missing ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Domain, error) {
	if len(ids) == 0 {
		return []*domain.Domain{}, nil
	}
	return postgres.RetryRead(ctx, func(ctx context.Context) ([]*domain.Domain, error) {
		rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getByIDsSQL, ids)
		if err != nil {
			return nil, fmt.Errorf("get domains by ids: %w", err)
		}
		defer rows.Close()
		return scanDomains(rows)
	})
}

// Create inserts a domain. A case-insensitive duplicate name yields
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, d *domain.Domain) (*domain.Domain, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	created, err := scanDomain(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL, d.ID, d.Name, d.Color))
	if err != nil {
		return nil, postgres.MapError(err, "domain", d.Name)
	}
	return created, nil
}

// Update renames or recolors a domain.
func (r *Repo) Update(ctx context.Context, d *domain.Domain) (*domain.Domain, error) {
	updated, err := scanDomain(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateSQL, d.ID, d.Name, d.Color))
	if err != nil {
		return nil, postgres.MapError(err, "domain", d.ID)
	}
	return updated, nil
}

// Delete removes a domain. Its articles (and their likes and editor grants)
// are removed by cascade; users assigned to it lose their domain.
// Returns the number of articles removed with it.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var articles int
	if err := q.QueryRow(ctx, countArticlesSQL, id).Scan(&articles); err != nil {
		return 0, postgres.MapError(err, "domain", id)
	}

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return 0, postgres.MapError(err, "domain", id)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("domain %s: %w", id, domain.ErrNotFound)
	}
	return articles, nil
}

func scanDomain(row pgx.Row) (*domain.Domain, error) {
	var d domain.Domain
	if err := row.Scan(&d.ID, &d.Name, &d.Color, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanDomains(rows pgx.Rows) ([]*domain.Domain, error) {
	out := []*domain.Domain{}
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan domains: %w", err)
	}
	return out, nil
}
