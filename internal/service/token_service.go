package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

// TokenService issues, rotates and revokes player sessions.
// Refresh tokens are single use: each refresh revokes the presented token, and
// presenting a revoked one again ends every session of that player.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

// NewTokenService creates a TokenService. refreshTTL must match the token
// manager's; it only sets expires_at for cleanup.
func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue starts a new session for userID.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	return s.issue(ctx, userID, nil)
}

// Refresh exchanges a live refresh token for a new pair.
func (s *TokenService) Refresh(ctx context.Context, presented string) (model.TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presented)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("%w: %w", model.ErrNotAuthenticated, err)
	}

	stored, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrNotAuthenticated
		}
		return model.TokenPair{}, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}
	if stored.UserID != userID {
		return model.TokenPair{}, fmt.Errorf("%w: %w", model.ErrNotAuthenticated, model.ErrTokenMismatch)
	}

	if err := stored.Check(hashRefresh(presented), s.now()); err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			s.revokeAll(ctx, stored.UserID, stored.JTI)
		}
		return model.TokenPair{}, fmt.Errorf("%w: %w", model.ErrNotAuthenticated, err)
	}

	pair, err := s.issue(ctx, userID, &stored)
	if errors.Is(err, model.ErrTokenRevoked) {
		// Lost the rotation to a concurrent refresh of the same token.
		s.revokeAll(ctx, stored.UserID, stored.JTI)
		return model.TokenPair{}, fmt.Errorf("%w: %w", model.ErrNotAuthenticated, err)
	}
	return pair, err
}

// RevokeByToken ends the session a refresh token belongs to.
func (s *TokenService) RevokeByToken(ctx context.Context, presented string) error {
	_, jti, err := s.manager.ParseRefreshToken(presented)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrNotAuthenticated, err)
	}
	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}
	return nil
}

// GetUserID resolves the player an access token was issued to.
func (s *TokenService) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", model.ErrNotAuthenticated, err)
	}
	return userID, nil
}

func (s *TokenService) issue(ctx context.Context, userID uuid.UUID, parent *model.RefreshToken) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("%w: failed to generate access token: %w", model.ErrPersistence, err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("%w: failed to generate refresh token: %w", model.ErrPersistence, err)
	}

	now := s.now()
	record := model.RefreshToken{
		ID:        uuid.New(),
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}

	if parent == nil {
		err = s.store.Create(ctx, record)
	} else {
		record.RotatedFromJTI = &parent.JTI
		err = s.store.Rotate(ctx, record)
	}
	if err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			return model.TokenPair{}, err
		}
		return model.TokenPair{}, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) revokeAll(ctx context.Context, userID uuid.UUID, jti string) {
	s.logger.Warn("Token service: revoked refresh token reused",
		"user_id", userID,
		"jti", jti)

	revoked, err := s.store.RevokeAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Token service: failed to revoke user tokens",
			"user_id", userID,
			"error", err.Error())
		return
	}
	s.logger.Info("Token service: user sessions revoked",
		"user_id", userID,
		"revoked", revoked)
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}
