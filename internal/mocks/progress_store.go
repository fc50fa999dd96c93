package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// ProgressStore is a mock type for the ProgressStore type.
type ProgressStore struct {
	mock.Mock
}

// GetByUserID provides a mock function with given fields: ctx, userID
func (_m *ProgressStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Progress, error) {
	ret := _m.Called(ctx, userID)

	r0 := ret.Get(0).(model.Progress)
	r1 := ret.Error(1)

	return r0, r1
}

// Advance provides a mock function with given fields: ctx, next, submission, levelTime
func (_m *ProgressStore) Advance(ctx context.Context, next model.Progress, submission model.Submission, levelTime *model.LevelTime) error {
	ret := _m.Called(ctx, next, submission, levelTime)

	r0 := ret.Error(0)

	return r0
}

// NewProgressStore creates a new instance of ProgressStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewProgressStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProgressStore {
	m := &ProgressStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
