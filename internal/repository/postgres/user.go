package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	query := `SELECT id, username, password_hash, started_at, created_at, updated_at
			  FROM users WHERE username = $1`

	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.StartedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, username, password_hash, started_at, created_at, updated_at
			  FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.StartedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) CreateWithProgress(ctx context.Context, user model.User, progress model.Progress) (model.User, error) {
	userQuery := `INSERT INTO users (id, username, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, username, password_hash, started_at, created_at, updated_at`

	progressQuery := `INSERT INTO progress (user_id, current_level, phase, completed_levels, used_hints,
			  level_started_at, version, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var savedUser model.User
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, userQuery,
			user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
		).Scan(
			&savedUser.ID, &savedUser.Username, &savedUser.PasswordHash, &savedUser.StartedAt,
			&savedUser.CreatedAt, &savedUser.UpdatedAt,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, progressQuery,
			user.ID, progress.CurrentLevel, string(progress.Phase), progress.CompletedLevels,
			progress.UsedHints, progress.LevelStartedAt, progress.Version, progress.UpdatedAt,
		)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrUsernameTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) MarkStarted(ctx context.Context, id uuid.UUID, at time.Time) (time.Time, error) {
	query := `UPDATE users SET started_at = COALESCE(started_at, $2), updated_at = NOW()
			  WHERE id = $1
			  RETURNING started_at`

	var startedAt time.Time
	if err := r.db.QueryRow(ctx, query, id, at).Scan(&startedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, model.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to mark user started: %w", err)
	}

	return startedAt, nil
}
