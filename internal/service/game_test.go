package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quicksnatch-server/internal/catalog"
	"github.com/dtroode/quicksnatch-server/internal/game"
	"github.com/dtroode/quicksnatch-server/internal/mocks"
	"github.com/dtroode/quicksnatch-server/internal/model"
	"github.com/dtroode/quicksnatch-server/internal/testutil"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type gameDeps struct {
	progress    *mocks.ProgressStore
	submissions *mocks.SubmissionStore
	levelTimes  *mocks.LevelTimeStore
	levelInfo   *mocks.LevelInfoSource
}

func newTestGame(t *testing.T) (*Game, gameDeps) {
	t.Helper()
	deps := gameDeps{
		progress:    mocks.NewProgressStore(t),
		submissions: mocks.NewSubmissionStore(t),
		levelTimes:  mocks.NewLevelTimeStore(t),
		levelInfo:   mocks.NewLevelInfoSource(t),
	}
	c := catalog.Default()
	machine := game.NewMachine(c, game.NewStaticAssigner(c.HintCount()))
	svc := NewGame(deps.progress, deps.submissions, deps.levelTimes, deps.levelInfo, machine, testutil.MakeNoopLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc, deps
}

func atHint(userID uuid.UUID, level, hint int, version int64) model.Progress {
	p := model.NewProgress(userID, fixedNow.Add(-time.Hour))
	p.CurrentLevel = level
	p.Phase = model.PhaseAwaitingLocation
	p.AssignedHint = &hint
	for l := 1; l < level; l++ {
		p.CompletedLevels = append(p.CompletedLevels, l)
	}
	p.Version = version
	return p
}

func TestGame_SubmitFlag_Correct(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	deps.progress.On("GetByUserID", ctx, userID).Return(model.NewProgress(userID, fixedNow), nil).Once()
	deps.progress.On("Advance", ctx,
		mock.MatchedBy(func(p model.Progress) bool {
			return p.Phase == model.PhaseAwaitingLocation && p.Version == 1 && p.AssignedHint != nil && *p.AssignedHint == 0
		}),
		mock.MatchedBy(func(s model.Submission) bool {
			return s.UserID == userID && s.Level == 1 && s.Kind == model.SubmissionKindFlag && s.Correct
		}),
		(*model.LevelTime)(nil),
	).Return(nil).Once()

	out, err := svc.SubmitFlag(ctx, userID, 1, "flag{quick_basics}")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "/location_hint/1", out.Redirect)
	assert.Equal(t, "Flag correct! Proceed to find the location.", out.Message)
}

func TestGame_SubmitFlag_IncorrectIsAudited(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	deps.progress.On("GetByUserID", ctx, userID).Return(model.NewProgress(userID, fixedNow), nil).Once()
	deps.submissions.On("Create", ctx, mock.MatchedBy(func(s model.Submission) bool {
		return !s.Correct && s.Kind == model.SubmissionKindFlag && s.Level == 1 && s.ID != uuid.Nil
	})).Return(nil).Once()

	_, err := svc.SubmitFlag(ctx, userID, 1, "flag{wrong}")
	require.ErrorIs(t, err, model.ErrIncorrectFlag)
}

func TestGame_SubmitFlag_AuditFailureIgnored(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	deps.progress.On("GetByUserID", ctx, userID).Return(model.NewProgress(userID, fixedNow), nil).Once()
	deps.submissions.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

	_, err := svc.SubmitFlag(ctx, userID, 1, "flag{wrong}")
	require.ErrorIs(t, err, model.ErrIncorrectFlag)
	assert.False(t, errors.Is(err, model.ErrPersistence))
}

func TestGame_SubmitFlag_EmptyIsNotAudited(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	deps.progress.On("GetByUserID", ctx, userID).Return(model.NewProgress(userID, fixedNow), nil).Once()

	_, err := svc.SubmitFlag(ctx, userID, 1, "  ")
	require.ErrorIs(t, err, model.ErrEmptySubmission)
}

func TestGame_SubmitLocation_Correct(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()
	p := atHint(userID, 1, 0, 1)

	deps.progress.On("GetByUserID", ctx, userID).Return(p, nil).Once()
	deps.progress.On("Advance", ctx,
		mock.MatchedBy(func(next model.Progress) bool {
			return next.CurrentLevel == 2 && next.Phase == model.PhaseAwaitingFlag && next.Version == 2 &&
				next.HasCompleted(1) && next.AssignedHint == nil
		}),
		mock.MatchedBy(func(s model.Submission) bool {
			return s.Kind == model.SubmissionKindLocation && s.Correct
		}),
		&model.LevelTime{UserID: userID, Level: 1, StartedAt: p.LevelStartedAt, EndedAt: fixedNow},
	).Return(nil).Once()

	out, err := svc.SubmitLocation(ctx, userID, 1, "HTML5GoldRush")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "/level/2", out.Redirect)
	assert.Equal(t, "Location verified! Moving to level 2", out.Message)
}

func TestGame_SubmitLocation_IncorrectLeavesProgress(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	deps.progress.On("GetByUserID", ctx, userID).Return(atHint(userID, 1, 0, 1), nil).Once()
	deps.submissions.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, err := svc.SubmitLocation(ctx, userID, 1, "abc")
	require.ErrorIs(t, err, model.ErrIncorrectCode)
	deps.progress.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGame_Submit_ConflictRetriesOnce(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	// The concurrent request already moved the player to the hint view.
	deps.progress.On("GetByUserID", ctx, userID).Return(model.NewProgress(userID, fixedNow), nil).Once()
	deps.progress.On("Advance", ctx, mock.Anything, mock.Anything, mock.Anything).Return(model.ErrVersionConflict).Once()
	deps.progress.On("GetByUserID", ctx, userID).Return(atHint(userID, 1, 0, 1), nil).Once()

	_, err := svc.SubmitFlag(ctx, userID, 1, "flag{quick_basics}")
	require.ErrorIs(t, err, model.ErrWrongPhase)

	var redirect *game.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, "/location_hint/1", redirect.Path)
}

func TestGame_Submit_ConflictExhausted(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	deps.progress.On("GetByUserID", ctx, userID).Return(model.NewProgress(userID, fixedNow), nil).Times(maxAdvanceAttempts)
	deps.progress.On("Advance", ctx, mock.Anything, mock.Anything, mock.Anything).Return(model.ErrVersionConflict).Times(maxAdvanceAttempts)

	_, err := svc.SubmitFlag(ctx, userID, 1, "flag{quick_basics}")
	require.ErrorIs(t, err, model.ErrPersistence)
}

func TestGame_Submit_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	deps.progress.On("GetByUserID", ctx, userID).Return(model.NewProgress(userID, fixedNow), nil).Once()
	deps.progress.On("Advance", ctx, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	_, err := svc.SubmitFlag(ctx, userID, 1, "flag{quick_basics}")
	require.ErrorIs(t, err, model.ErrPersistence)
	require.ErrorIs(t, err, assert.AnError)
}

func TestGame_LoadErrors(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	missing, broken := uuid.New(), uuid.New()

	deps.progress.On("GetByUserID", ctx, missing).Return(model.Progress{}, model.ErrNotFound).Once()
	deps.progress.On("GetByUserID", ctx, broken).Return(model.Progress{}, assert.AnError).Once()

	_, err := svc.Progress(ctx, missing)
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)

	_, err = svc.ViewLevel(ctx, broken, 1)
	assert.ErrorIs(t, err, model.ErrPersistence)
}

func TestGame_Views(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()
	p := atHint(userID, 2, 1, 3)

	deps.progress.On("GetByUserID", ctx, userID).Return(p, nil)

	pos, err := svc.Progress(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "/location_hint/2", pos.Redirect)
	assert.Equal(t, 2, pos.Progress.CurrentLevel)

	hint, err := svc.ViewHint(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, "The Rising Temple", hint.Title)

	_, err = svc.ViewLevel(ctx, userID, 2)
	assert.ErrorIs(t, err, model.ErrWrongPhase)

	levels, err := svc.Levels(ctx, userID)
	require.NoError(t, err)
	require.Len(t, levels, 5)
	assert.Equal(t, model.LevelStateCompleted, levels[0].State)
	assert.Equal(t, model.LevelStateCurrent, levels[1].State)
	assert.Equal(t, model.LevelStateLocked, levels[2].State)
}

func TestGame_LevelInfo(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)

	stored := model.LevelInfo{Level: 1, Title: "Basics", Prompt: "user@quicksnatch"}
	deps.levelInfo.On("LoadLevelInfo", ctx, 1).Return(stored, nil).Once()
	deps.levelInfo.On("LoadLevelInfo", ctx, 2).Return(model.LevelInfo{}, model.ErrNotFound).Once()
	deps.levelInfo.On("LoadLevelInfo", ctx, 3).Return(model.LevelInfo{}, assert.AnError).Once()

	got, err := svc.LevelInfo(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	for _, level := range []int{2, 3} {
		got, err = svc.LevelInfo(ctx, level)
		require.NoError(t, err)
		assert.Equal(t, catalog.FallbackLevelInfo(level), got)
	}

	_, err = svc.LevelInfo(ctx, 9)
	assert.ErrorIs(t, err, model.ErrInvalidLevel)
}

func TestGame_LevelInfo_NoSource(t *testing.T) {
	c := catalog.Default()
	svc := NewGame(nil, nil, nil, nil, game.NewMachine(c, game.NewStaticAssigner(c.HintCount())), testutil.MakeNoopLogger())

	got, err := svc.LevelInfo(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Level", got.Title)
}

func TestGame_LevelTime(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestGame(t)
	userID := uuid.New()

	p := model.NewProgress(userID, fixedNow.Add(-(3*time.Minute + 5*time.Second)))
	p.CurrentLevel = 2
	p.CompletedLevels = []int{1}
	deps.progress.On("GetByUserID", ctx, userID).Return(p, nil)
	deps.levelTimes.On("GetByUserAndLevel", ctx, userID, 1).Return(model.LevelTime{
		StartedAt: fixedNow.Add(-2 * time.Hour),
		EndedAt:   fixedNow.Add(-time.Hour + 4*time.Second),
	}, nil).Once()

	got, err := svc.LevelTime(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, "1h 0m 4s", got)

	got, err = svc.LevelTime(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, "3m 5s", got)

	got, err = svc.LevelTime(ctx, userID, 3)
	require.NoError(t, err)
	assert.Equal(t, "Not started", got)

	_, err = svc.LevelTime(ctx, userID, 0)
	assert.ErrorIs(t, err, model.ErrInvalidLevel)
}
