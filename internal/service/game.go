package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/quicksnatch-server/internal/catalog"
	"github.com/dtroode/quicksnatch-server/internal/game"
	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

// maxAdvanceAttempts bounds reload-and-retry after a lost compare-and-swap.
const maxAdvanceAttempts = 3

const notStarted = "Not started"

// Game runs player actions against the durable progress record.
type Game struct {
	progress    model.ProgressStore
	submissions model.SubmissionStore
	levelTimes  model.LevelTimeStore
	levelInfo   model.LevelInfoSource
	machine     *game.Machine
	logger      *logger.Logger
	now         func() time.Time
}

// NewGame creates a Game service. levelInfo may be nil, in which case every
// level answers with the fallback descriptor.
func NewGame(
	progress model.ProgressStore,
	submissions model.SubmissionStore,
	levelTimes model.LevelTimeStore,
	levelInfo model.LevelInfoSource,
	machine *game.Machine,
	logger *logger.Logger,
) *Game {
	return &Game{
		progress:    progress,
		submissions: submissions,
		levelTimes:  levelTimes,
		levelInfo:   levelInfo,
		machine:     machine,
		logger:      logger,
		now:         time.Now,
	}
}

// Progress returns the player's state and the view they belong on.
func (g *Game) Progress(ctx context.Context, userID uuid.UUID) (model.Position, error) {
	p, err := g.load(ctx, userID)
	if err != nil {
		return model.Position{}, err
	}
	return model.Position{Progress: p, Redirect: g.machine.Position(p)}, nil
}

// Levels lists the catalog with the player's state on every level.
func (g *Game) Levels(ctx context.Context, userID uuid.UUID) ([]model.LevelStatus, error) {
	p, err := g.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	levels := g.machine.Catalog().Levels()
	out := make([]model.LevelStatus, 0, len(levels))
	for _, lvl := range levels {
		state := model.LevelStateLocked
		switch {
		case p.HasCompleted(lvl.Number):
			state = model.LevelStateCompleted
		case p.Phase != model.PhaseCompleted && lvl.Number == p.CurrentLevel:
			state = model.LevelStateCurrent
		}
		out = append(out, model.LevelStatus{Level: lvl.Number, Title: lvl.Title, State: state})
	}
	return out, nil
}

// ViewLevel returns the level the player is solving, or a redirect error.
func (g *Game) ViewLevel(ctx context.Context, userID uuid.UUID, level int) (model.Level, error) {
	p, err := g.load(ctx, userID)
	if err != nil {
		return model.Level{}, err
	}
	return g.machine.ViewLevel(p, level)
}

// ViewHint returns the location hint assigned to the player, or a redirect error.
func (g *Game) ViewHint(ctx context.Context, userID uuid.UUID, level int) (model.Hint, error) {
	p, err := g.load(ctx, userID)
	if err != nil {
		return model.Hint{}, err
	}
	return g.machine.ViewHint(p, level)
}

// SubmitFlag verifies a flag for level.
func (g *Game) SubmitFlag(ctx context.Context, userID uuid.UUID, level int, flag string) (model.Outcome, error) {
	return g.submit(ctx, userID, level, model.SubmissionKindFlag,
		func(p model.Progress, now time.Time) (game.Result, error) {
			return g.machine.SubmitFlag(p, level, flag, now)
		})
}

// SubmitLocation verifies a location code for level.
func (g *Game) SubmitLocation(ctx context.Context, userID uuid.UUID, level int, code string) (model.Outcome, error) {
	return g.submit(ctx, userID, level, model.SubmissionKindLocation,
		func(p model.Progress, now time.Time) (game.Result, error) {
			return g.machine.SubmitLocation(p, level, code, now)
		})
}

type transition func(p model.Progress, now time.Time) (game.Result, error)

func (g *Game) submit(ctx context.Context, userID uuid.UUID, level int, kind model.SubmissionKind, apply transition) (model.Outcome, error) {
	for attempt := 1; attempt <= maxAdvanceAttempts; attempt++ {
		p, err := g.load(ctx, userID)
		if err != nil {
			return model.Outcome{}, err
		}

		now := g.now()
		res, err := apply(p, now)
		if err != nil {
			if errors.Is(err, model.ErrIncorrectFlag) || errors.Is(err, model.ErrIncorrectCode) {
				g.audit(ctx, model.Submission{UserID: userID, Level: level, Kind: kind, SubmittedAt: now})
			}
			return model.Outcome{}, err
		}

		submission := model.Submission{
			ID:          uuid.New(),
			UserID:      userID,
			Level:       level,
			Kind:        kind,
			Correct:     true,
			SubmittedAt: now,
		}
		var levelTime *model.LevelTime
		if kind == model.SubmissionKindLocation {
			levelTime = &model.LevelTime{UserID: userID, Level: level, StartedAt: p.LevelStartedAt, EndedAt: now}
		}

		err = g.progress.Advance(ctx, res.Progress, submission, levelTime)
		if err == nil {
			g.logger.Info("Game service: progress advanced",
				"user_id", userID,
				"level", level,
				"kind", string(kind),
				"phase", string(res.Progress.Phase),
				"current_level", res.Progress.CurrentLevel)
			return model.Outcome{Success: true, Message: res.Message, Redirect: res.Redirect}, nil
		}

		if !errors.Is(err, model.ErrVersionConflict) {
			g.logger.Error("Game service: failed to persist progress",
				"user_id", userID,
				"level", level,
				"error", err.Error())
			return model.Outcome{}, fmt.Errorf("%w: %w", model.ErrPersistence, err)
		}

		g.logger.Debug("Game service: concurrent progress update, retrying",
			"user_id", userID,
			"attempt", attempt)
	}

	return model.Outcome{}, fmt.Errorf("%w: progress kept changing", model.ErrPersistence)
}

func (g *Game) audit(ctx context.Context, s model.Submission) {
	s.ID = uuid.New()
	if err := g.submissions.Create(ctx, s); err != nil {
		g.logger.Warn("Game service: failed to record submission",
			"user_id", s.UserID,
			"level", s.Level,
			"error", err.Error())
	}
}

// LevelInfo returns the terminal descriptor of level, falling back to a
// placeholder when none is available.
func (g *Game) LevelInfo(ctx context.Context, level int) (model.LevelInfo, error) {
	if !g.machine.Catalog().ValidLevel(level) {
		return model.LevelInfo{}, model.ErrInvalidLevel
	}
	if g.levelInfo == nil {
		return catalog.FallbackLevelInfo(level), nil
	}

	info, err := g.levelInfo.LoadLevelInfo(ctx, level)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			g.logger.Error("Game service: failed to load level info",
				"level", level,
				"error", err.Error())
		}
		return catalog.FallbackLevelInfo(level), nil
	}
	return info, nil
}

// LevelTime formats the time the player spent on level.
func (g *Game) LevelTime(ctx context.Context, userID uuid.UUID, level int) (string, error) {
	if !g.machine.Catalog().ValidLevel(level) {
		return "", model.ErrInvalidLevel
	}

	p, err := g.load(ctx, userID)
	if err != nil {
		return "", err
	}

	switch {
	case p.HasCompleted(level):
		lt, err := g.levelTimes.GetByUserAndLevel(ctx, userID, level)
		if errors.Is(err, model.ErrNotFound) {
			return notStarted, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", model.ErrPersistence, err)
		}
		return game.FormatSpent(lt.Spent()), nil
	case p.Phase != model.PhaseCompleted && p.CurrentLevel == level:
		return game.FormatSpent(g.now().Sub(p.LevelStartedAt)), nil
	default:
		return notStarted, nil
	}
}

func (g *Game) load(ctx context.Context, userID uuid.UUID) (model.Progress, error) {
	p, err := g.progress.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Progress{}, fmt.Errorf("no progress for user: %w", model.ErrNotAuthenticated)
		}
		g.logger.Error("Game service: failed to load progress",
			"user_id", userID,
			"error", err.Error())
		return model.Progress{}, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}
	return p, nil
}
