package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StandingStore lists the data the leaderboard is ranked from.
type StandingStore interface {
	ListStandings(ctx context.Context) ([]Standing, error)
}

// Standing is one player's position before ranking.
type Standing struct {
	UserID           uuid.UUID
	Username         string
	CurrentLevel     int
	LastSubmissionAt *time.Time
	StartedAt        *time.Time
}

// LeaderboardEntry is a ranked standing.
type LeaderboardEntry struct {
	Rank     int
	Standing Standing
}
