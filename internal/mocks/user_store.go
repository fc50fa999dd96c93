package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// UserStore is a mock type for the UserStore type.
type UserStore struct {
	mock.Mock
}

// GetByUsername provides a mock function with given fields: ctx, username
func (_m *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	ret := _m.Called(ctx, username)

	r0 := ret.Get(0).(model.User)
	r1 := ret.Error(1)

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, id)

	r0 := ret.Get(0).(model.User)
	r1 := ret.Error(1)

	return r0, r1
}

// CreateWithProgress provides a mock function with given fields: ctx, user, progress
func (_m *UserStore) CreateWithProgress(ctx context.Context, user model.User, progress model.Progress) (model.User, error) {
	ret := _m.Called(ctx, user, progress)

	r0 := ret.Get(0).(model.User)
	r1 := ret.Error(1)

	return r0, r1
}

// MarkStarted provides a mock function with given fields: ctx, id, at
func (_m *UserStore) MarkStarted(ctx context.Context, id uuid.UUID, at time.Time) (time.Time, error) {
	ret := _m.Called(ctx, id, at)

	r0 := ret.Get(0).(time.Time)
	r1 := ret.Error(1)

	return r0, r1
}

// NewUserStore creates a new instance of UserStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
