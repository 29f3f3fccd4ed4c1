package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/canarydrop/internal/canary/domain"
	canaryMocks "github.com/allisson/canarydrop/internal/canary/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(
	ctx context.Context,
	operation string,
	duration time.Duration,
	err error,
) {
	m.Called(ctx, operation, duration, err)
}

func (m *mockBusinessMetrics) RecordTrigger(ctx context.Context, tokenType, alertMethod string, alerted bool) {
	m.Called(ctx, tokenType, alertMethod, alerted)
}

func expectMetrics(m *mockBusinessMetrics, operation string, err error) {
	m.On("RecordOperation", mock.Anything, operation, mock.AnythingOfType("time.Duration"), err).Once()
}

func TestNewUseCasesWithMetrics(t *testing.T) {
	mockMetrics := &mockBusinessMetrics{}

	assert.IsType(t, &canaryUseCaseWithMetrics{},
		NewCanaryUseCaseWithMetrics(canaryMocks.NewMockCanaryUseCase(t), mockMetrics))
	assert.IsType(t, &accessEventUseCaseWithMetrics{},
		NewAccessEventUseCaseWithMetrics(canaryMocks.NewMockAccessEventUseCase(t), mockMetrics))
	assert.IsType(t, &reportUseCaseWithMetrics{},
		NewReportUseCaseWithMetrics(canaryMocks.NewMockReportUseCase(t), mockMetrics))
}

func TestCanaryUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	testErr := errors.New("boom")

	t.Run("Create_RecordsSuccess", func(t *testing.T) {
		next := canaryMocks.NewMockCanaryUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		input := &domain.CreateCanaryInput{TokenType: domain.TokenTypeDNS, Name: "a"}
		canary := &domain.Canary{TokenID: "dns_x"}

		next.On("Create", mock.Anything, input).Return(canary, nil).Once()
		expectMetrics(mockMetrics, "canary_create", nil)

		result, err := NewCanaryUseCaseWithMetrics(next, mockMetrics).Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, canary, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Get_RecordsError", func(t *testing.T) {
		next := canaryMocks.NewMockCanaryUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		next.On("Get", mock.Anything, "dns_x").Return(nil, domain.ErrCanaryNotFound).Once()
		expectMetrics(mockMetrics, "canary_get", domain.ErrCanaryNotFound)

		result, err := NewCanaryUseCaseWithMetrics(next, mockMetrics).Get(ctx, "dns_x")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrCanaryNotFound)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("List_RecordsSuccess", func(t *testing.T) {
		next := canaryMocks.NewMockCanaryUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		next.On("List", mock.Anything, (*domain.TokenType)(nil)).Return([]*domain.Canary{}, nil).Once()
		expectMetrics(mockMetrics, "canary_list", nil)

		_, err := NewCanaryUseCaseWithMetrics(next, mockMetrics).List(ctx, nil)

		assert.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete_RecordsError", func(t *testing.T) {
		next := canaryMocks.NewMockCanaryUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		next.On("Delete", mock.Anything, "dns_x").Return(testErr).Once()
		expectMetrics(mockMetrics, "canary_delete", testErr)

		err := NewCanaryUseCaseWithMetrics(next, mockMetrics).Delete(ctx, "dns_x")

		assert.Equal(t, testErr, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestAccessEventUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("LogAccess_RecordsSuccess", func(t *testing.T) {
		next := canaryMocks.NewMockAccessEventUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		input := &domain.LogAccessInput{TokenID: "dns_x"}
		expected := &domain.AccessResult{
			Canary: &domain.Canary{
				TokenID:     "dns_x",
				TokenType:   domain.TokenTypeDNS,
				AlertMethod: domain.AlertMethodEmail,
			},
			Alert: &domain.Alert{Message: "Alert would be sent to: soc@example.com"},
		}

		next.On("LogAccess", mock.Anything, input).Return(expected, nil).Once()
		expectMetrics(mockMetrics, "access_log", nil)
		mockMetrics.On("RecordTrigger", mock.Anything, "dns", "email", true).Once()

		result, err := NewAccessEventUseCaseWithMetrics(next, mockMetrics).LogAccess(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("LogAccess_CountsUndispatchedAlert", func(t *testing.T) {
		next := canaryMocks.NewMockAccessEventUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		input := &domain.LogAccessInput{TokenID: "aws_x"}
		expected := &domain.AccessResult{
			Canary: &domain.Canary{
				TokenID:     "aws_x",
				TokenType:   domain.TokenTypeAWSKey,
				AlertMethod: domain.AlertMethodWebhook,
			},
		}

		next.On("LogAccess", mock.Anything, input).Return(expected, nil).Once()
		expectMetrics(mockMetrics, "access_log", nil)
		mockMetrics.On("RecordTrigger", mock.Anything, "aws-key", "webhook", false).Once()

		_, err := NewAccessEventUseCaseWithMetrics(next, mockMetrics).LogAccess(ctx, input)

		assert.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("LogAccess_UnknownTokenSkipsTrigger", func(t *testing.T) {
		next := canaryMocks.NewMockAccessEventUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		input := &domain.LogAccessInput{TokenID: "dns_missing"}

		next.On("LogAccess", mock.Anything, input).Return(nil, domain.ErrCanaryNotFound).Once()
		expectMetrics(mockMetrics, "access_log", domain.ErrCanaryNotFound)

		result, err := NewAccessEventUseCaseWithMetrics(next, mockMetrics).LogAccess(ctx, input)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrCanaryNotFound)
		mockMetrics.AssertExpectations(t)
		mockMetrics.AssertNotCalled(t, "RecordTrigger", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("List_RecordsError", func(t *testing.T) {
		next := canaryMocks.NewMockAccessEventUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		testErr := errors.New("boom")

		next.On("List", mock.Anything, (*string)(nil), 10).Return(nil, testErr).Once()
		expectMetrics(mockMetrics, "access_list", testErr)

		result, err := NewAccessEventUseCaseWithMetrics(next, mockMetrics).List(ctx, nil, 10)

		assert.Nil(t, result)
		assert.Equal(t, testErr, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestReportUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Statistics_RecordsSuccess", func(t *testing.T) {
		next := canaryMocks.NewMockReportUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		next.On("Statistics", mock.Anything).Return(&domain.Statistics{Total: 1, Active: 1}, nil).Once()
		expectMetrics(mockMetrics, "report_statistics", nil)

		stats, err := NewReportUseCaseWithMetrics(next, mockMetrics).Statistics(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, stats.Total)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ExportSnapshot_RecordsError", func(t *testing.T) {
		next := canaryMocks.NewMockReportUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		testErr := errors.New("boom")

		next.On("ExportSnapshot", mock.Anything).Return(nil, testErr).Once()
		expectMetrics(mockMetrics, "report_export", testErr)

		snapshot, err := NewReportUseCaseWithMetrics(next, mockMetrics).ExportSnapshot(ctx)

		assert.Nil(t, snapshot)
		assert.Equal(t, testErr, err)
		mockMetrics.AssertExpectations(t)
	})
}
