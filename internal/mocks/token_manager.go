package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TokenManager is a mock type for the TokenManager type.
type TokenManager struct {
	mock.Mock
}

// GenerateAccessToken provides a mock function with given fields: userID
func (_m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	ret := _m.Called(userID)

	r0 := ret.Get(0).(string)
	r1 := ret.Error(1)

	return r0, r1
}

// GenerateRefreshToken provides a mock function with given fields: userID
func (_m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	ret := _m.Called(userID)

	r0 := ret.Get(0).(string)
	r1 := ret.Get(1).(string)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// ParseAccessToken provides a mock function with given fields: token
func (_m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	ret := _m.Called(token)

	r0 := ret.Get(0).(uuid.UUID)
	r1 := ret.Error(1)

	return r0, r1
}

// ParseRefreshToken provides a mock function with given fields: token
func (_m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	ret := _m.Called(token)

	r0 := ret.Get(0).(uuid.UUID)
	r1 := ret.Get(1).(string)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// NewTokenManager creates a new instance of TokenManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
