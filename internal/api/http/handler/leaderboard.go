package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/quicksnatch-server/internal/game"
	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

// LeaderboardService defines leaderboard retrieval.
type LeaderboardService interface {
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
}

// Leaderboard handles the public leaderboard endpoint.
type Leaderboard struct {
	service LeaderboardService
	logger  *logger.Logger
}

// NewLeaderboard creates a new Leaderboard handler.
func NewLeaderboard(service LeaderboardService, logger *logger.Logger) *Leaderboard {
	return &Leaderboard{service: service, logger: logger}
}

type leaderboardEntryResponse struct {
	Rank             int        `json:"rank"`
	Username         string     `json:"username"`
	Level            int        `json:"level"`
	LastSubmissionAt *time.Time `json:"last_submission_at"`
	Elapsed          string     `json:"elapsed,omitempty"`
}

// List returns all players ranked.
func (h *Leaderboard) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		row := leaderboardEntryResponse{
			Rank:             e.Rank,
			Username:         e.Standing.Username,
			Level:            e.Standing.CurrentLevel,
			LastSubmissionAt: e.Standing.LastSubmissionAt,
		}
		if d, ok := game.Elapsed(e.Standing); ok {
			row.Elapsed = game.FormatSpent(d)
		}
		resp = append(resp, row)
	}

	writeJSON(w, http.StatusOK, resp)
}
