package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// LevelTimeStore is a mock type for the LevelTimeStore type.
type LevelTimeStore struct {
	mock.Mock
}

// GetByUserAndLevel provides a mock function with given fields: ctx, userID, level
func (_m *LevelTimeStore) GetByUserAndLevel(ctx context.Context, userID uuid.UUID, level int) (model.LevelTime, error) {
	ret := _m.Called(ctx, userID, level)

	r0 := ret.Get(0).(model.LevelTime)
	r1 := ret.Error(1)

	return r0, r1
}

// NewLevelTimeStore creates a new instance of LevelTimeStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewLevelTimeStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *LevelTimeStore {
	m := &LevelTimeStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
