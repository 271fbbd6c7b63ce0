package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedDomain creates a domain with a unique name.
func SeedDomain(t *testing.T, pool *pgxpool.Pool) domain.Domain {
	t.Helper()

	d := domain.Domain{
		ID:        uuid.New(),
		Name:      "Domain " + uniqueSuffix(),
		Color:     domain.DefaultDomainColor,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO domains (id, name, color, created_at) VALUES ($1, $2, $3, $4)`,
		d.ID, d.Name, d.Color, d.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDomain: %v", err)
	}

	return d
}

// SeedUser creates a user with the given role. domainID may be nil.
// The password hash is a placeholder and does not verify.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole, domainID *uuid.UUID) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.User{
		ID:           uuid.New(),
		Username:     "user_" + suffix,
		Email:        "user-" + suffix + "@example.com",
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplaceho",
		Role:         role,
		DomainID:     domainID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, email, password_hash, role, domain_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.Role), u.DomainID, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return u
}

// SeedArticle creates an article in domainID authored by authorID.
// When published is true the article is validated by its author and public.
func SeedArticle(t *testing.T, pool *pgxpool.Pool, domainID, authorID uuid.UUID, published bool) domain.Article {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	a := domain.Article{
		ID:                uuid.New(),
		Title:             "Article " + uniqueSuffix(),
		Content:           "Seeded article body text.",
		DomainID:          domainID,
		AuthorID:          authorID,
		Date:              now,
		PendingValidation: !published,
		UpdatedAt:         now,
	}
	if published {
		a.ValidatedBy = &authorID
		a.ValidatedAt = &now
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO articles (id, title, content, domain_id, author_id, date, pending_validation,
		                       validated_by, validated_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.Title, a.Content, a.DomainID, a.AuthorID, a.Date, a.PendingValidation,
		a.ValidatedBy, a.ValidatedAt, a.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedArticle: %v", err)
	}

	return a
}

// SetArticleDate backdates an article, e.g. to exercise auto-archiving.
func SetArticleDate(t *testing.T, pool *pgxpool.Pool, articleID uuid.UUID, date time.Time) {
	t.Helper()

	if _, err := pool.Exec(context.Background(),
		`UPDATE articles SET date = $2 WHERE id = $1`, articleID, date); err != nil {
		t.Fatalf("testhelper: SetArticleDate: %v", err)
	}
}
