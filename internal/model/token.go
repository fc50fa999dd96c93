package model

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (token string, jti string, err error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (userID uuid.UUID, jti string, err error)
}

// RefreshTokenStore persists issued refresh tokens so they can be rotated and revoked.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	// Rotate revokes the token named by next.RotatedFromJTI and stores next in one step.
	// Returns ErrTokenRevoked when the parent was no longer live.
	Rotate(ctx context.Context, next RefreshToken) error
	RevokeByJTI(ctx context.Context, jti string) error
	// RevokeAllByUser revokes every live token of a user and reports how many there were.
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// RefreshToken is the stored form of an issued refresh token; only its hash is kept.
type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	UserID         uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
}

// Check reports whether the stored token still accepts a presented token with hash at now.
// Revocation is checked first so reuse of a rotated token is always detected.
func (rt RefreshToken) Check(hash []byte, now time.Time) error {
	switch {
	case rt.RevokedAt != nil:
		return ErrTokenRevoked
	case !now.Before(rt.ExpiresAt):
		return ErrTokenExpired
	case subtle.ConstantTimeCompare(rt.TokenHash, hash) != 1:
		return ErrTokenMismatch
	default:
		return nil
	}
}
