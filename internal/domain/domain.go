package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDomainColor is applied when a domain is created without a color.
const DefaultDomainColor = "#3b82f6"

// Domain is a topical category scoping articles and domain-bound roles.
type Domain struct {
	ID        uuid.UUID
	Name      string
	Color     string
	CreatedAt time.Time
}
