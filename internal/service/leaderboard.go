package service

import (
	"context"
	"fmt"

	"github.com/dtroode/quicksnatch-server/internal/game"
	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

// Leaderboard ranks all players.
type Leaderboard struct {
	standings model.StandingStore
	logger    *logger.Logger
}

func NewLeaderboard(standings model.StandingStore, logger *logger.Logger) *Leaderboard {
	return &Leaderboard{standings: standings, logger: logger}
}

func (l *Leaderboard) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	standings, err := l.standings.ListStandings(ctx)
	if err != nil {
		l.logger.Error("Leaderboard service: failed to list standings",
			"error", err.Error())
		return nil, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}
	return game.Rank(standings), nil
}
