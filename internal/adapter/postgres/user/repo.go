// Package user implements the credential store for users using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const userColumns = `id, username, email, password_hash, role, domain_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

const getByEmailSQL = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

const getByIDsSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = ANY($1)`

const createSQL = `
INSERT INTO users (id, username, email, password_hash, role, domain_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

const updatePasswordSQL = `
UPDATE users SET password_hash = $2, updated_at = now()
WHERE id = $1`

// Validation stamps reference the validator; they are cleared as a pair
// before the user row goes away.
const clearValidationsSQL = `
UPDATE articles SET validated_by = NULL, validated_at = NULL
WHERE validated_by = $1`

const deleteSQL = `DELETE FROM users WHERE id = $1`

const promoteSQL = `
UPDATE users SET role = $2, domain_id = NULL, updated_at = now()
WHERE email = $1 AND role <> $2`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return postgres.RetryRead(ctx, func(ctx context.Context) (*domain.User, error) {
		row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByIDSQL, id)
		u, err := scanUser(row)
		if err != nil {
			return nil, postgres.MapError(err, "user", id)
		}
		return u, nil
	})
}

// GetByEmail returns a user by (normalized) email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	return postgres.RetryRead(ctx, func(ctx context.Context) (*domain.User, error) {
		row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByEmailSQL, email)
		u, err := scanUser(row)
		if err != nil {
			return nil, postgres.MapError(err, "user", email)
		}
		return u, nil
	})
}

// GetByIDs returns the users with the given ids. Missing ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}

	return postgres.RetryRead(ctx, func(ctx context.Context) ([]*domain.User, error) {
		rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getByIDsSQL, ids)
		if err != nil {
			return nil, fmt.Errorf("get users by ids: %w", err)
		}
		defer rows.Close()

		users, err := scanUsers(rows)
		if err != nil {
			return nil, fmt.Errorf("get users by ids: %w", err)
		}
		return users, nil
	})
}

// List returns users matching the filter ordered by username, plus the
// total number of matches.
func (r *Repo) List(ctx context.Context, f domain.UserFilter) ([]*domain.User, int, error) {
	limit, offset := postgres.ClampPage(f.Limit, f.Offset)

	where := squirrel.And{}
	if f.DomainID != nil {
		where = append(where, squirrel.Eq{"domain_id": *f.DomainID})
	}
	if f.Role != nil {
		where = append(where, squirrel.Eq{"role": string(*f.Role)})
	}

	countSQL, countArgs, err := postgres.Builder.Select("count(*)").From("users").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count users: %w", err)
	}
	listSQL, listArgs, err := postgres.Builder.Select(userColumns).From("users").Where(where).
		OrderBy("username ASC").Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users: %w", err)
	}

	type page struct {
		users []*domain.User
		total int
	}
	p, err := postgres.RetryRead(ctx, func(ctx context.Context) (page, error) {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		var total int
		if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return page{}, fmt.Errorf("count users: %w", err)
		}

		rows, err := q.Query(ctx, listSQL, listArgs...)
		if err != nil {
			return page{}, fmt.Errorf("list users: %w", err)
		}
		defer rows.Close()

		users, err := scanUsers(rows)
		if err != nil {
			return page{}, fmt.Errorf("list users: %w", err)
		}
		return page{users: users, total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return p.users, p.total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user and returns the persisted domain.User.
// A duplicate username or email results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL,
		u.ID, u.Username, domain.NormalizeEmail(u.Email), u.PasswordHash, string(u.Role), u.DomainID, now, now,
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.Username)
	}
	return created, nil
}

// Update applies the non-nil fields of p and returns the updated user.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.UserUpdateParams) (*domain.User, error) {
	b := postgres.Builder.Update("users").Set("updated_at", squirrel.Expr("now()"))
	if p.Username != nil {
		b = b.Set("username", *p.Username)
	}
	if p.Email != nil {
		b = b.Set("email", domain.NormalizeEmail(*p.Email))
	}
	if p.Role != nil {
		b = b.Set("role", string(*p.Role))
	}
	switch {
	case p.ClearDomain:
		b = b.Set("domain_id", nil)
	case p.DomainID != nil:
		b = b.Set("domain_id", *p.DomainID)
	}

	query, args, err := b.Where(squirrel.Eq{"id": id}).Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update user: %w", err)
	}

	u, err := scanUser(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, updatePasswordSQL, id, hash)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a user. A user who still authors articles cannot be
// deleted and yields domain.ErrConflict. Must run inside a transaction so
// the validation stamps are cleared atomically with the delete.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, clearValidationsSQL, id); err != nil {
		return postgres.MapError(err, "user", id)
	}

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// PromoteByEmail sets a user's role, clearing the domain. It reports false
// when no user has that email or the user already holds the role.
func (r *Repo) PromoteByEmail(ctx context.Context, email string, role domain.UserRole) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, promoteSQL, domain.NormalizeEmail(email), string(role))
	if err != nil {
		return false, postgres.MapError(err, "user", email)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.DomainID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}
