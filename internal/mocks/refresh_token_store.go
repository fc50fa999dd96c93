package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// RefreshTokenStore is a mock type for the RefreshTokenStore type.
type RefreshTokenStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, token
func (_m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	ret := _m.Called(ctx, token)

	r0 := ret.Error(0)

	return r0
}

// GetByJTI provides a mock function with given fields: ctx, jti
func (_m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	ret := _m.Called(ctx, jti)

	r0 := ret.Get(0).(model.RefreshToken)
	r1 := ret.Error(1)

	return r0, r1
}

// Rotate provides a mock function with given fields: ctx, next
func (_m *RefreshTokenStore) Rotate(ctx context.Context, next model.RefreshToken) error {
	ret := _m.Called(ctx, next)

	r0 := ret.Error(0)

	return r0
}

// RevokeByJTI provides a mock function with given fields: ctx, jti
func (_m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	ret := _m.Called(ctx, jti)

	r0 := ret.Error(0)

	return r0
}

// RevokeAllByUser provides a mock function with given fields: ctx, userID
func (_m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, userID)

	r0 := ret.Get(0).(int64)
	r1 := ret.Error(1)

	return r0, r1
}

// NewRefreshTokenStore creates a new instance of RefreshTokenStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRefreshTokenStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *RefreshTokenStore {
	m := &RefreshTokenStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
