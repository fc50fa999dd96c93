package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// CreateWithProgress inserts the user and its initial progress row atomically.
	CreateWithProgress(ctx context.Context, user User, progress Progress) (User, error)
	// MarkStarted sets started_at if it is still empty and returns the stored value.
	MarkStarted(ctx context.Context, id uuid.UUID, at time.Time) (time.Time, error)
}

// User represents a registered player.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash []byte
	StartedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
