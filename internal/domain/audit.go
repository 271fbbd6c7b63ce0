package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is an append-only record of a login, logout or moderation event.
type AuditEntry struct {
	ID             uuid.UUID
	UserID         *uuid.UUID
	Action         AuditAction
	EntityType     EntityType
	EntityID       *uuid.UUID
	ClientIdentity string
	ClientAgent    string
	CreatedAt      time.Time
}

// LikeResult is returned by a like toggle.
type LikeResult struct {
	ArticleID  uuid.UUID
	Action     LikeAction
	LikesCount int
}
