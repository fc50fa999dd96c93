package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// LevelInfoSource is a mock type for the LevelInfoSource type.
type LevelInfoSource struct {
	mock.Mock
}

// LoadLevelInfo provides a mock function with given fields: ctx, level
func (_m *LevelInfoSource) LoadLevelInfo(ctx context.Context, level int) (model.LevelInfo, error) {
	ret := _m.Called(ctx, level)

	r0 := ret.Get(0).(model.LevelInfo)
	r1 := ret.Error(1)

	return r0, r1
}

// NewLevelInfoSource creates a new instance of LevelInfoSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewLevelInfoSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *LevelInfoSource {
	m := &LevelInfoSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
