package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// AuthService is a mock type for the AuthService type.
type AuthService struct {
	mock.Mock
}

// Register provides a mock function with given fields: ctx, username, password, confirmPassword
func (_m *AuthService) Register(ctx context.Context, username string, password string, confirmPassword string) error {
	ret := _m.Called(ctx, username, password, confirmPassword)

	r0 := ret.Error(0)

	return r0
}

// Login provides a mock function with given fields: ctx, username, password
func (_m *AuthService) Login(ctx context.Context, username string, password string) (model.LoginResult, error) {
	ret := _m.Called(ctx, username, password)

	r0 := ret.Get(0).(model.LoginResult)
	r1 := ret.Error(1)

	return r0, r1
}

// Refresh provides a mock function with given fields: ctx, refreshToken
func (_m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	ret := _m.Called(ctx, refreshToken)

	r0 := ret.Get(0).(model.TokenPair)
	r1 := ret.Error(1)

	return r0, r1
}

// Logout provides a mock function with given fields: ctx, refreshToken
func (_m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	ret := _m.Called(ctx, refreshToken)

	r0 := ret.Error(0)

	return r0
}

// NewAuthService creates a new instance of AuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
