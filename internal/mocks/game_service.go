package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// GameService is a mock type for the GameService type.
type GameService struct {
	mock.Mock
}

// Progress provides a mock function with given fields: ctx, userID
func (_m *GameService) Progress(ctx context.Context, userID uuid.UUID) (model.Position, error) {
	ret := _m.Called(ctx, userID)

	r0 := ret.Get(0).(model.Position)
	r1 := ret.Error(1)

	return r0, r1
}

// Levels provides a mock function with given fields: ctx, userID
func (_m *GameService) Levels(ctx context.Context, userID uuid.UUID) ([]model.LevelStatus, error) {
	ret := _m.Called(ctx, userID)

	var r0 []model.LevelStatus
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.LevelStatus)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ViewLevel provides a mock function with given fields: ctx, userID, level
func (_m *GameService) ViewLevel(ctx context.Context, userID uuid.UUID, level int) (model.Level, error) {
	ret := _m.Called(ctx, userID, level)

	r0 := ret.Get(0).(model.Level)
	r1 := ret.Error(1)

	return r0, r1
}

// ViewHint provides a mock function with given fields: ctx, userID, level
func (_m *GameService) ViewHint(ctx context.Context, userID uuid.UUID, level int) (model.Hint, error) {
	ret := _m.Called(ctx, userID, level)

	r0 := ret.Get(0).(model.Hint)
	r1 := ret.Error(1)

	return r0, r1
}

// SubmitFlag provides a mock function with given fields: ctx, userID, level, flag
func (_m *GameService) SubmitFlag(ctx context.Context, userID uuid.UUID, level int, flag string) (model.Outcome, error) {
	ret := _m.Called(ctx, userID, level, flag)

	r0 := ret.Get(0).(model.Outcome)
	r1 := ret.Error(1)

	return r0, r1
}

// SubmitLocation provides a mock function with given fields: ctx, userID, level, code
func (_m *GameService) SubmitLocation(ctx context.Context, userID uuid.UUID, level int, code string) (model.Outcome, error) {
	ret := _m.Called(ctx, userID, level, code)

	r0 := ret.Get(0).(model.Outcome)
	r1 := ret.Error(1)

	return r0, r1
}

// LevelInfo provides a mock function with given fields: ctx, level
func (_m *GameService) LevelInfo(ctx context.Context, level int) (model.LevelInfo, error) {
	ret := _m.Called(ctx, level)

	r0 := ret.Get(0).(model.LevelInfo)
	r1 := ret.Error(1)

	return r0, r1
}

// LevelTime provides a mock function with given fields: ctx, userID, level
func (_m *GameService) LevelTime(ctx context.Context, userID uuid.UUID, level int) (string, error) {
	ret := _m.Called(ctx, userID, level)

	r0 := ret.Get(0).(string)
	r1 := ret.Error(1)

	return r0, r1
}

// NewGameService creates a new instance of GameService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewGameService(t interface {
	mock.TestingT
	Cleanup(func())
}) *GameService {
	m := &GameService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
