package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

var _ model.ProgressStore = (*ProgressRepository)(nil)

type ProgressRepository struct {
	db *Connection
}

func NewProgressRepository(db *Connection) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Progress, error) {
	const query = `
        SELECT user_id, current_level, phase, assigned_hint, completed_levels, used_hints,
               level_started_at, last_submission_at, version, updated_at
        FROM progress WHERE user_id = $1
    `

	var (
		p     model.Progress
		phase string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.CurrentLevel, &phase, &p.AssignedHint, &p.CompletedLevels, &p.UsedHints,
		&p.LevelStartedAt, &p.LastSubmissionAt, &p.Version, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Progress{}, model.ErrNotFound
		}
		return model.Progress{}, fmt.Errorf("failed to get progress: %w", err)
	}
	p.Phase = model.Phase(phase)

	return p, nil
}

func (r *ProgressRepository) Advance(ctx context.Context, next model.Progress, submission model.Submission, levelTime *model.LevelTime) error {
	const updateQuery = `
        UPDATE progress
        SET current_level = $2, phase = $3, assigned_hint = $4, completed_levels = $5, used_hints = $6,
            level_started_at = $7, last_submission_at = $8, version = $9, updated_at = $10
        WHERE user_id = $1 AND version = $11
    `
	const levelTimeQuery = `
        INSERT INTO level_times (user_id, level, started_at, ended_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, level) DO NOTHING
    `

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateQuery,
			next.UserID, next.CurrentLevel, string(next.Phase), next.AssignedHint, next.CompletedLevels,
			next.UsedHints, next.LevelStartedAt, next.LastSubmissionAt, next.Version, next.UpdatedAt,
			next.Version-1,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrVersionConflict
		}

		if err := insertSubmission(ctx, tx, submission); err != nil {
			return err
		}

		if levelTime != nil {
			if _, err := tx.Exec(ctx, levelTimeQuery,
				levelTime.UserID, levelTime.Level, levelTime.StartedAt, levelTime.EndedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to advance progress: %w", err)
	}

	return nil
}
