package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

var (
	_ model.SubmissionStore = (*SubmissionRepository)(nil)
	_ model.LevelTimeStore  = (*SubmissionRepository)(nil)
)

// SubmissionRepository stores the submission audit trail and per-level timings.
type SubmissionRepository struct {
	db *Connection
}

func NewSubmissionRepository(db *Connection) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertSubmission(ctx context.Context, db execer, s model.Submission) error {
	const query = `
        INSERT INTO submissions (id, user_id, level, kind, correct, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := db.Exec(ctx, query, s.ID, s.UserID, s.Level, string(s.Kind), s.Correct, s.SubmittedAt)
	return err
}

func (r *SubmissionRepository) Create(ctx context.Context, submission model.Submission) error {
	if err := insertSubmission(ctx, r.db, submission); err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) GetByUserAndLevel(ctx context.Context, userID uuid.UUID, level int) (model.LevelTime, error) {
	const query = `
        SELECT user_id, level, started_at, ended_at
        FROM level_times WHERE user_id = $1 AND level = $2
    `
	var lt model.LevelTime
	err := r.db.QueryRow(ctx, query, userID, level).Scan(&lt.UserID, &lt.Level, &lt.StartedAt, &lt.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LevelTime{}, model.ErrNotFound
		}
		return model.LevelTime{}, fmt.Errorf("failed to get level time: %w", err)
	}
	return lt, nil
}
