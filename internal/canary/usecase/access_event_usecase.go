package usecase

import (
	"context"
	"log/slog"

	validation "github.com/jellydator/validation"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/database"
	apperrors "github.com/allisson/canarydrop/internal/errors"
	appValidation "github.com/allisson/canarydrop/internal/validation"
)

// DefaultAccessLogLimit is used when no default limit is configured.
const DefaultAccessLogLimit = 100

// accessEventUseCase implements AccessEventUseCase.
type accessEventUseCase struct {
	txManager    database.TxManager
	canaryRepo   CanaryRepository
	eventRepo    AccessEventRepository
	dispatcher   AlertDispatcher
	logger       *slog.Logger
	defaultLimit int
}

// NewAccessEventUseCase creates a new AccessEventUseCase. A defaultLimit <= 0 selects
// DefaultAccessLogLimit.
func NewAccessEventUseCase(
	txManager database.TxManager,
	canaryRepo CanaryRepository,
	eventRepo AccessEventRepository,
	dispatcher AlertDispatcher,
	logger *slog.Logger,
	defaultLimit int,
) AccessEventUseCase {
	if defaultLimit <= 0 {
		defaultLimit = DefaultAccessLogLimit
	}
	return &accessEventUseCase{
		txManager:    txManager,
		canaryRepo:   canaryRepo,
		eventRepo:    eventRepo,
		dispatcher:   dispatcher,
		logger:       logger,
		defaultLimit: defaultLimit,
	}
}

func validateLogAccessInput(input *domain.LogAccessInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.TokenID,
			validation.Required.Error("token id is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// LogAccess increments the canary counter and appends the access event in a single
// transaction, both stamped with the same time. The alert is dispatched only after the
// commit; a dispatch failure is logged and leaves the recorded access in place.
func (a *accessEventUseCase) LogAccess(
	ctx context.Context,
	input *domain.LogAccessInput,
) (*domain.AccessResult, error) {
	if input == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "access input is required")
	}
	if err := validateLogAccessInput(input); err != nil {
		return nil, err
	}

	metadata, err := input.Metadata.Normalize()
	if err != nil {
		return nil, err
	}

	event := &domain.AccessEvent{
		TokenID:    input.TokenID,
		AccessedAt: now(),
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		Metadata:   metadata,
	}

	var canary *domain.Canary
	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.canaryRepo.RecordAccess(ctx, event.TokenID, event.AccessedAt); err != nil {
			return err
		}
		if err := a.eventRepo.Create(ctx, event); err != nil {
			return err
		}

		var err error
		canary, err = a.canaryRepo.Get(ctx, event.TokenID)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &domain.AccessResult{Canary: canary, Event: event}

	alert, err := a.dispatcher.Dispatch(ctx, canary, event)
	if err != nil {
		a.logger.Error("failed to dispatch alert",
			slog.String("token_id", canary.TokenID),
			slog.String("alert_method", string(canary.AlertMethod)),
			slog.Any("error", err),
		)
		return result, nil
	}
	result.Alert = alert

	return result, nil
}

// List returns the most recent access events, optionally for a single canary.
func (a *accessEventUseCase) List(
	ctx context.Context,
	tokenID *string,
	limit int,
) ([]*domain.AccessEvent, error) {
	if limit <= 0 {
		limit = a.defaultLimit
	}
	return a.eventRepo.List(ctx, tokenID, limit)
}
