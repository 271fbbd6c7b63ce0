package postgres

import "github.com/Masterminds/squirrel"

// Builder is the squirrel statement builder for PostgreSQL placeholders.
var Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Page limits shared by listing repositories.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampPage applies the default and maximum page size and forbids a
// negative offset.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
