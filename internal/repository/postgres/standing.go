package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

var _ model.StandingStore = (*StandingRepository)(nil)

type StandingRepository struct {
	db *Connection
}

func NewStandingRepository(db *Connection) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListStandings(ctx context.Context) ([]model.Standing, error) {
	query := `
		SELECT u.id, u.username, p.current_level, p.last_submission_at, u.started_at
		FROM users u
		JOIN progress p ON p.user_id = u.id
		ORDER BY p.current_level DESC, p.last_submission_at ASC NULLS LAST, u.username ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	defer rows.Close()

	var standings []model.Standing
	for rows.Next() {
		var s model.Standing
		err := rows.Scan(&s.UserID, &s.Username, &s.CurrentLevel, &s.LastSubmissionAt, &s.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate standings: %w", err)
	}

	return standings, nil
}
