package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// PostgreSQL SQLSTATE codes mapped onto domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeRestrictViolation   = "23001"
	codeLockNotAvailable    = "55P03"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled pass through unmapped.
// An FK violation raised by deleting a still-referenced row is a conflict;
// any other FK violation means the referenced row does not exist.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case codeForeignKeyViolation:
			if isReferencedViolation(pgErr) {
				return fmt.Errorf("%s %v: %w", entity, key, domain.ErrConflict)
			}
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case codeRestrictViolation, codeLockNotAvailable:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrConflict)
		case codeCheckViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}

// isReferencedViolation reports whether an FK error was raised because the
// row being deleted is still referenced by another table.
func isReferencedViolation(pgErr *pgconn.PgError) bool {
	return strings.Contains(pgErr.Detail, "is still referenced")
}
