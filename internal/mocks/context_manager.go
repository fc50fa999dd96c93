package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ContextManager is a mock type for the ContextManager type.
type ContextManager struct {
	mock.Mock
}

// SetUserIDToContext provides a mock function with given fields: ctx, userID
func (_m *ContextManager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	ret := _m.Called(ctx, userID)

	var r0 context.Context
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(context.Context)
	}

	return r0
}

// GetUserIDFromContext provides a mock function with given fields: ctx
func (_m *ContextManager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	ret := _m.Called(ctx)

	r0 := ret.Get(0).(uuid.UUID)
	r1 := ret.Get(1).(bool)

	return r0, r1
}

// NewContextManager creates a new instance of ContextManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewContextManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
