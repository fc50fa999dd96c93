package service

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quicksnatch-server/internal/mocks"
	"github.com/dtroode/quicksnatch-server/internal/model"
	"github.com/dtroode/quicksnatch-server/internal/testutil"
)

func newTestTokenService(t *testing.T) (*TokenService, *mocks.TokenManager, *mocks.RefreshTokenStore) {
	t.Helper()
	manager := mocks.NewTokenManager(t)
	store := mocks.NewRefreshTokenStore(t)
	svc := NewTokenService(manager, store, time.Hour, testutil.MakeNoopLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc, manager, store
}

func liveRecord(userID uuid.UUID, jti, token string) model.RefreshToken {
	return model.RefreshToken{
		ID:        uuid.New(),
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(token),
		IssuedAt:  fixedNow.Add(-time.Minute),
		ExpiresAt: fixedNow.Add(time.Hour),
	}
}

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, manager, store := newTestTokenService(t)

	manager.On("GenerateAccessToken", userID).Return("access", nil).Once()
	manager.On("GenerateRefreshToken", userID).Return("refresh", "jti-1", nil).Once()
	store.On("Create", ctx, mock.MatchedBy(func(rt model.RefreshToken) bool {
		h := sha256.Sum256([]byte("refresh"))
		return rt.JTI == "jti-1" && rt.UserID == userID && string(rt.TokenHash) == string(h[:]) &&
			rt.IssuedAt.Equal(fixedNow) && rt.ExpiresAt.Equal(fixedNow.Add(time.Hour)) && rt.RotatedFromJTI == nil
	})).Return(nil).Once()

	pair, err := svc.Issue(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, model.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, pair)
}

func TestTokenService_Issue_Failures(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("manager", func(t *testing.T) {
		svc, manager, _ := newTestTokenService(t)
		manager.On("GenerateAccessToken", userID).Return("", assert.AnError).Once()

		_, err := svc.Issue(ctx, userID)
		assert.ErrorContains(t, err, "failed to generate access token")
		assert.ErrorIs(t, err, model.ErrPersistence)
	})

	t.Run("refresh signing", func(t *testing.T) {
		svc, manager, _ := newTestTokenService(t)
		manager.On("GenerateAccessToken", userID).Return("access", nil).Once()
		manager.On("GenerateRefreshToken", userID).Return("", "", assert.AnError).Once()

		_, err := svc.Issue(ctx, userID)
		assert.ErrorIs(t, err, model.ErrPersistence)
	})

	t.Run("store", func(t *testing.T) {
		svc, manager, store := newTestTokenService(t)
		manager.On("GenerateAccessToken", userID).Return("access", nil).Once()
		manager.On("GenerateRefreshToken", userID).Return("refresh", "jti", nil).Once()
		store.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

		_, err := svc.Issue(ctx, userID)
		assert.ErrorIs(t, err, model.ErrPersistence)
	})
}

func TestTokenService_Refresh_Rotates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, manager, store := newTestTokenService(t)

	manager.On("ParseRefreshToken", "old").Return(userID, "jti-old", nil).Once()
	store.On("GetByJTI", ctx, "jti-old").Return(liveRecord(userID, "jti-old", "old"), nil).Once()
	manager.On("GenerateAccessToken", userID).Return("access-2", nil).Once()
	manager.On("GenerateRefreshToken", userID).Return("new", "jti-new", nil).Once()
	store.On("Rotate", ctx, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.JTI == "jti-new" && rt.RotatedFromJTI != nil && *rt.RotatedFromJTI == "jti-old"
	})).Return(nil).Once()

	pair, err := svc.Refresh(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, model.TokenPair{AccessToken: "access-2", RefreshToken: "new"}, pair)
}

func TestTokenService_Refresh_Rejected(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name    string
		setup   func(m *mocks.TokenManager, s *mocks.RefreshTokenStore)
		wantErr error
	}{
		{
			name: "unparseable",
			setup: func(m *mocks.TokenManager, s *mocks.RefreshTokenStore) {
				m.On("ParseRefreshToken", "tok").Return(uuid.Nil, "", assert.AnError).Once()
			},
			wantErr: model.ErrNotAuthenticated,
		},
		{
			name: "unknown jti",
			setup: func(m *mocks.TokenManager, s *mocks.RefreshTokenStore) {
				m.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
				s.On("GetByJTI", ctx, "jti").Return(model.RefreshToken{}, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotAuthenticated,
		},
		{
			name: "store down",
			setup: func(m *mocks.TokenManager, s *mocks.RefreshTokenStore) {
				m.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
				s.On("GetByJTI", ctx, "jti").Return(model.RefreshToken{}, assert.AnError).Once()
			},
			wantErr: model.ErrPersistence,
		},
		{
			name: "other user",
			setup: func(m *mocks.TokenManager, s *mocks.RefreshTokenStore) {
				m.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
				s.On("GetByJTI", ctx, "jti").Return(liveRecord(uuid.New(), "jti", "tok"), nil).Once()
			},
			wantErr: model.ErrTokenMismatch,
		},
		{
			name: "expired",
			setup: func(m *mocks.TokenManager, s *mocks.RefreshTokenStore) {
				rec := liveRecord(userID, "jti", "tok")
				rec.ExpiresAt = fixedNow
				m.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
				s.On("GetByJTI", ctx, "jti").Return(rec, nil).Once()
			},
			wantErr: model.ErrTokenExpired,
		},
		{
			name: "hash mismatch",
			setup: func(m *mocks.TokenManager, s *mocks.RefreshTokenStore) {
				m.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
				s.On("GetByJTI", ctx, "jti").Return(liveRecord(userID, "jti", "different"), nil).Once()
			},
			wantErr: model.ErrTokenMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, manager, store := newTestTokenService(t)
			tt.setup(manager, store)

			_, err := svc.Refresh(ctx, "tok")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenService_Refresh_ReuseRevokesAll(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, manager, store := newTestTokenService(t)

	rec := liveRecord(userID, "jti", "tok")
	revokedAt := fixedNow.Add(-time.Minute)
	rec.RevokedAt = &revokedAt

	manager.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
	store.On("GetByJTI", ctx, "jti").Return(rec, nil).Once()
	store.On("RevokeAllByUser", ctx, userID).Return(int64(2), nil).Once()

	_, err := svc.Refresh(ctx, "tok")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	assert.ErrorIs(t, err, model.ErrTokenRevoked)
}

func TestTokenService_Refresh_LostRotation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, manager, store := newTestTokenService(t)

	manager.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
	store.On("GetByJTI", ctx, "jti").Return(liveRecord(userID, "jti", "tok"), nil).Once()
	manager.On("GenerateAccessToken", userID).Return("access", nil).Once()
	manager.On("GenerateRefreshToken", userID).Return("new", "jti-new", nil).Once()
	store.On("Rotate", ctx, mock.Anything).Return(model.ErrTokenRevoked).Once()
	store.On("RevokeAllByUser", ctx, userID).Return(int64(0), assert.AnError).Once()

	_, err := svc.Refresh(ctx, "tok")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestTokenService_RevokeByToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc, manager, store := newTestTokenService(t)
		manager.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
		store.On("RevokeByJTI", ctx, "jti").Return(nil).Once()

		assert.NoError(t, svc.RevokeByToken(ctx, "tok"))
	})

	t.Run("store error", func(t *testing.T) {
		svc, manager, store := newTestTokenService(t)
		manager.On("ParseRefreshToken", "tok").Return(userID, "jti", nil).Once()
		store.On("RevokeByJTI", ctx, "jti").Return(assert.AnError).Once()

		assert.ErrorIs(t, svc.RevokeByToken(ctx, "tok"), model.ErrPersistence)
	})
}

func TestTokenService_GetUserID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, manager, _ := newTestTokenService(t)

	manager.On("ParseAccessToken", "good").Return(userID, nil).Once()
	manager.On("ParseAccessToken", "bad").Return(uuid.Nil, assert.AnError).Once()

	got, err := svc.GetUserID(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = svc.GetUserID(ctx, "bad")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}
