package model

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Phase is the step of the current level a player is on.
type Phase string

const (
	// PhaseAwaitingFlag means the level's flag has not been verified yet.
	PhaseAwaitingFlag Phase = "awaiting_flag"
	// PhaseAwaitingLocation means the flag was verified and a location hint is assigned.
	PhaseAwaitingLocation Phase = "awaiting_location"
	// PhaseCompleted is terminal: every level has been finished.
	PhaseCompleted Phase = "completed"
)

// ProgressStore is the single durable source of truth for player progress.
type ProgressStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Progress, error)
	// Advance stores next if the stored version still equals next.Version-1.
	// The submission and, when set, the level time are written in the same transaction.
	// Returns ErrVersionConflict when another writer got there first.
	Advance(ctx context.Context, next Progress, submission Submission, levelTime *LevelTime) error
}

// Progress is the per-user game state.
type Progress struct {
	UserID           uuid.UUID
	CurrentLevel     int
	Phase            Phase
	AssignedHint     *int
	CompletedLevels  []int
	UsedHints        []int
	LevelStartedAt   time.Time
	LastSubmissionAt *time.Time
	Version          int64
	UpdatedAt        time.Time
}

// NewProgress returns the initial state of a freshly registered player.
func NewProgress(userID uuid.UUID, now time.Time) Progress {
	return Progress{
		UserID:          userID,
		CurrentLevel:    1,
		Phase:           PhaseAwaitingFlag,
		CompletedLevels: []int{},
		UsedHints:       []int{},
		LevelStartedAt:  now,
		UpdatedAt:       now,
	}
}

// HasCompleted reports whether level is in the completed set.
func (p Progress) HasCompleted(level int) bool {
	return slices.Contains(p.CompletedLevels, level)
}

// Clone returns a deep copy so transitions never share slices with their input.
func (p Progress) Clone() Progress {
	c := p
	c.CompletedLevels = slices.Clone(p.CompletedLevels)
	c.UsedHints = slices.Clone(p.UsedHints)
	if p.AssignedHint != nil {
		h := *p.AssignedHint
		c.AssignedHint = &h
	}
	if p.LastSubmissionAt != nil {
		t := *p.LastSubmissionAt
		c.LastSubmissionAt = &t
	}
	return c
}
