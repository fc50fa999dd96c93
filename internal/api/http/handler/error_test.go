package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quicksnatch-server/internal/game"
	"github.com/dtroode/quicksnatch-server/internal/model"
	"github.com/dtroode/quicksnatch-server/internal/testutil"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantMessage  string
		wantRedirect string
	}{
		{
			name:         "wrong phase",
			err:          &game.RedirectError{Path: "/location_hint/2", Err: model.ErrWrongPhase},
			wantStatus:   http.StatusConflict,
			wantMessage:  "You can only access your current level!",
			wantRedirect: "/location_hint/2",
		},
		{
			name:         "invalid level with redirect",
			err:          &game.RedirectError{Path: "/level/1", Err: model.ErrInvalidLevel},
			wantStatus:   http.StatusBadRequest,
			wantMessage:  "Invalid level",
			wantRedirect: "/level/1",
		},
		{
			name:        "invalid level",
			err:         model.ErrInvalidLevel,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid level",
		},
		{
			name:         "not authenticated",
			err:          fmt.Errorf("%w: token expired", model.ErrNotAuthenticated),
			wantStatus:   http.StatusUnauthorized,
			wantMessage:  "Please login first",
			wantRedirect: "/login",
		},
		{
			name:        "password mismatch",
			err:         model.ErrPasswordMismatch,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Passwords do not match",
		},
		{
			name:        "invalid credentials",
			err:         model.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid username or password",
		},
		{
			name:        "username taken",
			err:         model.ErrUsernameTaken,
			wantStatus:  http.StatusConflict,
			wantMessage: "Username already exists",
		},
		{
			name:        "persistence",
			err:         fmt.Errorf("%w: connection reset", model.ErrPersistence),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "Something went wrong, please try again.",
		},
		{
			name:        "unknown",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, testutil.MakeNoopLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body.Error)
			assert.Equal(t, tt.wantRedirect, body.Redirect)
		})
	}
}

func TestRejection(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    model.SubmissionKind
		wantMsg string
		wantOK  bool
	}{
		{"empty flag", model.ErrEmptySubmission, model.SubmissionKindFlag, "No flag submitted", true},
		{"empty code", model.ErrEmptySubmission, model.SubmissionKindLocation, "No location code provided", true},
		{"incorrect flag", model.ErrIncorrectFlag, model.SubmissionKindFlag, "Incorrect flag. Try again!", true},
		{"incorrect code", model.ErrIncorrectCode, model.SubmissionKindLocation, "Incorrect location code. Try again!", true},
		{"other", model.ErrPersistence, model.SubmissionKindFlag, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, ok := rejection(tt.err, tt.kind, "/level/1")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.False(t, resp.Success)
		})
	}
}
