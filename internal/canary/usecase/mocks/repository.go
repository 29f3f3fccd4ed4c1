// Package mocks provides mock implementations of the canary use case interfaces and
// their dependencies for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

// testingT is satisfied by *testing.T.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockCanaryRepository is a mock implementation of CanaryRepository.
type MockCanaryRepository struct {
	mock.Mock
}

// NewMockCanaryRepository creates a MockCanaryRepository whose expectations are asserted on cleanup.
func NewMockCanaryRepository(t testingT) *MockCanaryRepository {
	m := &MockCanaryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of CanaryRepository.
func (m *MockCanaryRepository) Create(ctx context.Context, canary *domain.Canary) error {
	args := m.Called(ctx, canary)
	return args.Error(0)
}

// Get mocks the Get method of CanaryRepository.
func (m *MockCanaryRepository) Get(ctx context.Context, tokenID string) (*domain.Canary, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Canary), args.Error(1)
}

// List mocks the List method of CanaryRepository.
func (m *MockCanaryRepository) List(ctx context.Context, tokenType *domain.TokenType) ([]*domain.Canary, error) {
	args := m.Called(ctx, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Canary), args.Error(1)
}

// RecordAccess mocks the RecordAccess method of CanaryRepository.
func (m *MockCanaryRepository) RecordAccess(ctx context.Context, tokenID string, accessedAt time.Time) error {
	args := m.Called(ctx, tokenID, accessedAt)
	return args.Error(0)
}

// Delete mocks the Delete method of CanaryRepository.
func (m *MockCanaryRepository) Delete(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockAccessEventRepository is a mock implementation of AccessEventRepository.
type MockAccessEventRepository struct {
	mock.Mock
}

// NewMockAccessEventRepository creates a MockAccessEventRepository whose expectations are
// asserted on cleanup.
func NewMockAccessEventRepository(t testingT) *MockAccessEventRepository {
	m := &MockAccessEventRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of AccessEventRepository.
func (m *MockAccessEventRepository) Create(ctx context.Context, event *domain.AccessEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// List mocks the List method of AccessEventRepository.
func (m *MockAccessEventRepository) List(
	ctx context.Context,
	tokenID *string,
	limit int,
) ([]*domain.AccessEvent, error) {
	args := m.Called(ctx, tokenID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccessEvent), args.Error(1)
}

// DeleteByTokenID mocks the DeleteByTokenID method of AccessEventRepository.
func (m *MockAccessEventRepository) DeleteByTokenID(ctx context.Context, tokenID string) (int64, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAlertDispatcher is a mock implementation of AlertDispatcher.
type MockAlertDispatcher struct {
	mock.Mock
}

// NewMockAlertDispatcher creates a MockAlertDispatcher whose expectations are asserted on cleanup.
func NewMockAlertDispatcher(t testingT) *MockAlertDispatcher {
	m := &MockAlertDispatcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Dispatch mocks the Dispatch method of AlertDispatcher.
func (m *MockAlertDispatcher) Dispatch(
	ctx context.Context,
	canary *domain.Canary,
	event *domain.AccessEvent,
) (*domain.Alert, error) {
	args := m.Called(ctx, canary, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}
