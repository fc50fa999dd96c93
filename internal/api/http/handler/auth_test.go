package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quicksnatch-server/internal/mocks"
	"github.com/dtroode/quicksnatch-server/internal/model"
	"github.com/dtroode/quicksnatch-server/internal/testutil"
)

func TestAuth_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(s *mocks.AuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"username":"alice","password":"secret1","confirm_password":"secret1"}`,
			setupMock: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "secret1", "secret1").Return(nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   "Registration successful! Please login.",
		},
		{
			name: "mismatch",
			body: `{"username":"alice","password":"secret1","confirm_password":"secret2"}`,
			setupMock: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "secret1", "secret2").Return(model.ErrPasswordMismatch).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Passwords do not match",
		},
		{
			name: "taken",
			body: `{"username":"alice","password":"secret1","confirm_password":"secret1"}`,
			setupMock: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "secret1", "secret1").Return(model.ErrUsernameTaken).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   "Username already exists",
		},
		{
			name:       "bad json",
			body:       `{"username":`,
			setupMock:  func(s *mocks.AuthService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewAuthService(t)
			tt.setupMock(svc)
			h := NewAuth(svc, testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Register(rec, newRequest(http.MethodPost, "/api/register", tt.body, uuid.Nil, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestAuth_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "alice", "secret1").Return(model.LoginResult{
			Tokens:   model.TokenPair{AccessToken: "a", RefreshToken: "r"},
			Redirect: "/level/1",
		}, nil).Once()
		h := NewAuth(svc, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/api/login", `{"username":"alice","password":"secret1"}`, uuid.Nil, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body tokenResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, tokenResponse{AccessToken: "a", RefreshToken: "r", Redirect: "/level/1"}, body)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "alice", "nope").Return(model.LoginResult{}, model.ErrInvalidCredentials).Once()
		h := NewAuth(svc, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/api/login", `{"username":"alice","password":"nope"}`, uuid.Nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid username or password")
	})

	t.Run("token signing failed", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "alice", "secret1").
			Return(model.LoginResult{}, fmt.Errorf("%w: failed to generate access token: %w", model.ErrPersistence, assert.AnError)).Once()
		h := NewAuth(svc, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/api/login", `{"username":"alice","password":"secret1"}`, uuid.Nil, nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong, please try again.")
	})

	t.Run("unknown field", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/api/login", `{"login":"alice"}`, uuid.Nil, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuth_Refresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "old").Return(model.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil).Once()
		h := NewAuth(svc, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Refresh(rec, newRequest(http.MethodPost, "/api/token/refresh", `{"refresh_token":"old"}`, uuid.Nil, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"access_token":"a2","refresh_token":"r2"}`, rec.Body.String())
	})

	t.Run("revoked", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "old").Return(model.TokenPair{}, model.ErrNotAuthenticated).Once()
		h := NewAuth(svc, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Refresh(rec, newRequest(http.MethodPost, "/api/token/refresh", `{"refresh_token":"old"}`, uuid.Nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Refresh(rec, newRequest(http.MethodPost, "/api/token/refresh", `{}`, uuid.Nil, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuth_Logout(t *testing.T) {
	svc := mocks.NewAuthService(t)
	svc.On("Logout", mock.Anything, "rt").Return(nil).Once()
	h := NewAuth(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Logout(rec, newRequest(http.MethodPost, "/api/logout", `{"refresh_token":"rt"}`, uuid.Nil, nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
