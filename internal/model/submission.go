package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubmissionKind distinguishes flag attempts from location code attempts.
type SubmissionKind string

const (
	SubmissionKindFlag     SubmissionKind = "flag"
	SubmissionKindLocation SubmissionKind = "location"
)

// SubmissionStore records submission attempts for auditing.
type SubmissionStore interface {
	Create(ctx context.Context, submission Submission) error
}

// Submission is a single flag or location code attempt.
type Submission struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Level       int
	Kind        SubmissionKind
	Correct     bool
	SubmittedAt time.Time
}

// LevelTimeStore reads per-level timing rows.
type LevelTimeStore interface {
	GetByUserAndLevel(ctx context.Context, userID uuid.UUID, level int) (LevelTime, error)
}

// LevelTime is the time a player spent on a finished level.
type LevelTime struct {
	UserID    uuid.UUID
	Level     int
	StartedAt time.Time
	EndedAt   time.Time
}

// Spent returns the duration between start and end.
func (lt LevelTime) Spent() time.Duration {
	return lt.EndedAt.Sub(lt.StartedAt)
}
