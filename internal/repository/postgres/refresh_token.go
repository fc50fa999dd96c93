package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository keeps hashed refresh tokens and their rotation chain.
type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

const revokeLiveByJTI = `
        UPDATE refresh_tokens SET revoked_at = NOW(), updated_at = NOW()
         WHERE jti = $1 AND revoked_at IS NULL
    `

func insertRefreshToken(ctx context.Context, db execer, rt model.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (id, jti, user_id, token_hash, issued_at, expires_at, rotated_from_jti)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	_, err := db.Exec(ctx, query, rt.ID, rt.JTI, rt.UserID, rt.TokenHash, rt.IssuedAt, rt.ExpiresAt, rt.RotatedFromJTI)
	return err
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	if err := insertRefreshToken(ctx, r.db, token); err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	const query = `
        SELECT id, jti, user_id, token_hash, issued_at, expires_at, revoked_at, rotated_from_jti
        FROM refresh_tokens WHERE jti = $1
    `
	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, jti).Scan(
		&rt.ID, &rt.JTI, &rt.UserID, &rt.TokenHash, &rt.IssuedAt, &rt.ExpiresAt, &rt.RevokedAt, &rt.RotatedFromJTI,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by jti: %w", err)
	}
	return rt, nil
}

// Rotate revokes the parent token and inserts its successor in one transaction,
// so two concurrent refreshes of the same token cannot both succeed.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, next model.RefreshToken) error {
	if next.RotatedFromJTI == nil {
		return fmt.Errorf("rotated refresh token has no parent")
	}

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, revokeLiveByJTI, *next.RotatedFromJTI)
		if err != nil {
			return fmt.Errorf("failed to revoke parent refresh token: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrTokenRevoked
		}
		if err := insertRefreshToken(ctx, tx, next); err != nil {
			return fmt.Errorf("failed to create rotated refresh token: %w", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, model.ErrTokenRevoked) {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return err
}

func (r *RefreshTokenRepository) RevokeByJTI(ctx context.Context, jti string) error {
	if _, err := r.db.Exec(ctx, revokeLiveByJTI, jti); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
        UPDATE refresh_tokens SET revoked_at = NOW(), updated_at = NOW()
         WHERE user_id = $1 AND revoked_at IS NULL
    `
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return tag.RowsAffected(), nil
}
