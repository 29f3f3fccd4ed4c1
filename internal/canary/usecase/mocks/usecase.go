package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

// MockCanaryUseCase is a mock implementation of CanaryUseCase.
type MockCanaryUseCase struct {
	mock.Mock
}

// NewMockCanaryUseCase creates a MockCanaryUseCase whose expectations are asserted on cleanup.
func NewMockCanaryUseCase(t testingT) *MockCanaryUseCase {
	m := &MockCanaryUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of CanaryUseCase.
func (m *MockCanaryUseCase) Create(ctx context.Context, input *domain.CreateCanaryInput) (*domain.Canary, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Canary), args.Error(1)
}

// Get mocks the Get method of CanaryUseCase.
func (m *MockCanaryUseCase) Get(ctx context.Context, tokenID string) (*domain.Canary, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Canary), args.Error(1)
}

// List mocks the List method of CanaryUseCase.
func (m *MockCanaryUseCase) List(ctx context.Context, tokenType *domain.TokenType) ([]*domain.Canary, error) {
	args := m.Called(ctx, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Canary), args.Error(1)
}

// Delete mocks the Delete method of CanaryUseCase.
func (m *MockCanaryUseCase) Delete(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockAccessEventUseCase is a mock implementation of AccessEventUseCase.
type MockAccessEventUseCase struct {
	mock.Mock
}

// NewMockAccessEventUseCase creates a MockAccessEventUseCase whose expectations are asserted
// on cleanup.
func NewMockAccessEventUseCase(t testingT) *MockAccessEventUseCase {
	m := &MockAccessEventUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// LogAccess mocks the LogAccess method of AccessEventUseCase.
func (m *MockAccessEventUseCase) LogAccess(
	ctx context.Context,
	input *domain.LogAccessInput,
) (*domain.AccessResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessResult), args.Error(1)
}

// List mocks the List method of AccessEventUseCase.
func (m *MockAccessEventUseCase) List(
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

// MockReportUseCase is a mock implementation of ReportUseCase.
type MockReportUseCase struct {
	mock.Mock
}

// NewMockReportUseCase creates a MockReportUseCase whose expectations are asserted on cleanup.
func NewMockReportUseCase(t testingT) *MockReportUseCase {
	m := &MockReportUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Statistics mocks the Statistics method of ReportUseCase.
func (m *MockReportUseCase) Statistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

// ExportSnapshot mocks the ExportSnapshot method of ReportUseCase.
func (m *MockReportUseCase) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}
