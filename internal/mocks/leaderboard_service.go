package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// LeaderboardService is a mock type for the LeaderboardService type.
type LeaderboardService struct {
	mock.Mock
}

// Leaderboard provides a mock function with given fields: ctx
func (_m *LeaderboardService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	ret := _m.Called(ctx)

	var r0 []model.LeaderboardEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.LeaderboardEntry)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewLeaderboardService creates a new instance of LeaderboardService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewLeaderboardService(t interface {
	mock.TestingT
	Cleanup(func())
}) *LeaderboardService {
	m := &LeaderboardService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
