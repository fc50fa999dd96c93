package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// SubmissionStore is a mock type for the SubmissionStore type.
type SubmissionStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, submission
func (_m *SubmissionStore) Create(ctx context.Context, submission model.Submission) error {
	ret := _m.Called(ctx, submission)

	r0 := ret.Error(0)

	return r0
}

// NewSubmissionStore creates a new instance of SubmissionStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSubmissionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SubmissionStore {
	m := &SubmissionStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
