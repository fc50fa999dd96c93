package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// StandingStore is a mock type for the StandingStore type.
type StandingStore struct {
	mock.Mock
}

// ListStandings provides a mock function with given fields: ctx
func (_m *StandingStore) ListStandings(ctx context.Context) ([]model.Standing, error) {
	ret := _m.Called(ctx)

	var r0 []model.Standing
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Standing)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewStandingStore creates a new instance of StandingStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewStandingStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *StandingStore {
	m := &StandingStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
