package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/canarydrop/internal/canary/domain"
	canaryMocks "github.com/allisson/canarydrop/internal/canary/usecase/mocks"
	databaseMocks "github.com/allisson/canarydrop/internal/database/mocks"
	apperrors "github.com/allisson/canarydrop/internal/errors"
)

type accessEventUseCaseMocks struct {
	txManager  *databaseMocks.MockTxManager
	canaryRepo *canaryMocks.MockCanaryRepository
	eventRepo  *canaryMocks.MockAccessEventRepository
	dispatcher *canaryMocks.MockAlertDispatcher
}

func setupAccessEventUseCase(
	t *testing.T,
	logOutput io.Writer,
	defaultLimit int,
) (AccessEventUseCase, *accessEventUseCaseMocks) {
	m := &accessEventUseCaseMocks{
		txManager:  databaseMocks.NewMockTxManager(t),
		canaryRepo: canaryMocks.NewMockCanaryRepository(t),
		eventRepo:  canaryMocks.NewMockAccessEventRepository(t),
		dispatcher: canaryMocks.NewMockAlertDispatcher(t),
	}
	logger := slog.New(slog.NewJSONHandler(logOutput, nil))
	uc := NewAccessEventUseCase(m.txManager, m.canaryRepo, m.eventRepo, m.dispatcher, logger, defaultLimit)
	return uc, m
}

func strPtr(s string) *string {
	return &s
}

func TestAccessEventUseCase_LogAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsAccessAndDispatchesAlert", func(t *testing.T) {
		uc, m := setupAccessEventUseCase(t, io.Discard, 0)

		var recordedAt time.Time
		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		m.canaryRepo.On("RecordAccess", mock.Anything, "dns_x", mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) {
				recordedAt = args.Get(2).(time.Time)
			}).
			Return(nil).
			Once()
		m.eventRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AccessEvent")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.AccessEvent).ID = 7
			}).
			Return(nil).
			Once()

		lastAccessedAt := time.Now().UTC()
		updated := &domain.Canary{
			TokenID:        "dns_x",
			TokenType:      domain.TokenTypeDNS,
			AlertMethod:    domain.AlertMethodConsole,
			AccessedCount:  1,
			LastAccessedAt: &lastAccessedAt,
		}
		m.canaryRepo.On("Get", mock.Anything, "dns_x").Return(updated, nil).Once()

		alert := &domain.Alert{ID: uuid.Must(uuid.NewV7()), Method: domain.AlertMethodConsole, TokenID: "dns_x"}
		m.dispatcher.On("Dispatch", mock.Anything, updated, mock.AnythingOfType("*domain.AccessEvent")).
			Return(alert, nil).
			Once()

		result, err := uc.LogAccess(ctx, &domain.LogAccessInput{
			TokenID:   "dns_x",
			IPAddress: strPtr("10.0.0.5"),
			Metadata:  domain.Metadata{"attempt": 1.0},
		})

		require.NoError(t, err)
		assert.Equal(t, updated, result.Canary)
		assert.Equal(t, alert, result.Alert)
		assert.Equal(t, int64(7), result.Event.ID)
		assert.Equal(t, "dns_x", result.Event.TokenID)
		assert.Equal(t, "10.0.0.5", *result.Event.IPAddress)
		assert.Nil(t, result.Event.UserAgent)
		assert.Equal(t, recordedAt, result.Event.AccessedAt)
		assert.Equal(t, domain.Metadata{"attempt": int64(1)}, result.Event.Metadata)
	})

	t.Run("Success_NilMetadataBecomesEmpty", func(t *testing.T) {
		uc, m := setupAccessEventUseCase(t, io.Discard, 0)

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		m.canaryRepo.On("RecordAccess", mock.Anything, "dns_x", mock.Anything).Return(nil).Once()
		m.eventRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		canary := &domain.Canary{TokenID: "dns_x", AccessedCount: 1}
		m.canaryRepo.On("Get", mock.Anything, "dns_x").Return(canary, nil).Once()
		m.dispatcher.On("Dispatch", mock.Anything, canary, mock.Anything).Return(&domain.Alert{}, nil).Once()

		result, err := uc.LogAccess(ctx, &domain.LogAccessInput{TokenID: "dns_x"})

		require.NoError(t, err)
		assert.NotNil(t, result.Event.Metadata)
		assert.Empty(t, result.Event.Metadata)
	})

	t.Run("Success_AlertFailureIsLogged", func(t *testing.T) {
		var logs bytes.Buffer
		uc, m := setupAccessEventUseCase(t, &logs, 0)

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		m.canaryRepo.On("RecordAccess", mock.Anything, "dns_x", mock.Anything).Return(nil).Once()
		m.eventRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		canary := &domain.Canary{TokenID: "dns_x", AccessedCount: 1, AlertMethod: domain.AlertMethodWebhook}
		m.canaryRepo.On("Get", mock.Anything, "dns_x").Return(canary, nil).Once()
		m.dispatcher.On("Dispatch", mock.Anything, canary, mock.Anything).
			Return(nil, errors.New("journal unavailable")).
			Once()

		result, err := uc.LogAccess(ctx, &domain.LogAccessInput{TokenID: "dns_x"})

		require.NoError(t, err)
		assert.Nil(t, result.Alert)
		assert.Equal(t, canary, result.Canary)
		assert.Contains(t, logs.String(), "failed to dispatch alert")
		assert.Contains(t, logs.String(), "journal unavailable")
	})

	t.Run("Error_UnknownToken", func(t *testing.T) {
		uc, m := setupAccessEventUseCase(t, io.Discard, 0)

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		m.canaryRepo.On("RecordAccess", mock.Anything, "dns_missing", mock.Anything).
			Return(domain.ErrCanaryNotFound).
			Once()

		result, err := uc.LogAccess(ctx, &domain.LogAccessInput{TokenID: "dns_missing"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrCanaryNotFound)
		m.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_EventInsertFails", func(t *testing.T) {
		uc, m := setupAccessEventUseCase(t, io.Discard, 0)

		storageErr := apperrors.Storage(errors.New("disk I/O error"), "failed to create access event")
		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		m.canaryRepo.On("RecordAccess", mock.Anything, "dns_x", mock.Anything).Return(nil).Once()
		m.eventRepo.On("Create", mock.Anything, mock.Anything).Return(storageErr).Once()

		result, err := uc.LogAccess(ctx, &domain.LogAccessInput{TokenID: "dns_x"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
		m.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MalformedMetadata", func(t *testing.T) {
		uc, _ := setupAccessEventUseCase(t, io.Discard, 0)

		result, err := uc.LogAccess(ctx, &domain.LogAccessInput{
			TokenID:  "dns_x",
			Metadata: domain.Metadata{"nested": map[string]any{"a": 1}},
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrMalformedMetadata)
	})

	t.Run("Error_EmptyTokenID", func(t *testing.T) {
		uc, _ := setupAccessEventUseCase(t, io.Discard, 0)

		result, err := uc.LogAccess(ctx, &domain.LogAccessInput{TokenID: " "})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_NilInput", func(t *testing.T) {
		uc, _ := setupAccessEventUseCase(t, io.Discard, 0)

		result, err := uc.LogAccess(ctx, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestAccessEventUseCase_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		defaultLimit  int
		limit         int
		expectedLimit int
	}{
		{name: "Success_ZeroLimitUsesPackageDefault", defaultLimit: 0, limit: 0, expectedLimit: DefaultAccessLogLimit},
		{name: "Success_ZeroLimitUsesConfiguredDefault", defaultLimit: 25, limit: 0, expectedLimit: 25},
		{name: "Success_NegativeLimitUsesDefault", defaultLimit: 25, limit: -3, expectedLimit: 25},
		{name: "Success_ExplicitLimit", defaultLimit: 25, limit: 5, expectedLimit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := setupAccessEventUseCase(t, io.Discard, tt.defaultLimit)

			tokenID := strPtr("dns_x")
			events := []*domain.AccessEvent{{ID: 1, TokenID: "dns_x"}}
			m.eventRepo.On("List", mock.Anything, tokenID, tt.expectedLimit).Return(events, nil).Once()

			result, err := uc.List(ctx, tokenID, tt.limit)

			require.NoError(t, err)
			assert.Equal(t, events, result)
		})
	}

	t.Run("Error_StorageFailure", func(t *testing.T) {
		uc, m := setupAccessEventUseCase(t, io.Discard, 0)

		storageErr := apperrors.Storage(errors.New("closed"), "failed to list access events")
		m.eventRepo.On("List", mock.Anything, (*string)(nil), DefaultAccessLogLimit).Return(nil, storageErr).Once()

		result, err := uc.List(ctx, nil, 0)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}
