package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/canary/service"
	"github.com/allisson/canarydrop/internal/database"
	apperrors "github.com/allisson/canarydrop/internal/errors"
	appValidation "github.com/allisson/canarydrop/internal/validation"
)

// maxCreateAttempts bounds how many fresh token ids Create draws after a collision.
const maxCreateAttempts = 3

// canaryUseCase implements CanaryUseCase.
type canaryUseCase struct {
	txManager    database.TxManager
	canaryRepo   CanaryRepository
	eventRepo    AccessEventRepository
	tokenFactory service.TokenFactory
}

// NewCanaryUseCase creates a new CanaryUseCase.
func NewCanaryUseCase(
	txManager database.TxManager,
	canaryRepo CanaryRepository,
	eventRepo AccessEventRepository,
	tokenFactory service.TokenFactory,
) CanaryUseCase {
	return &canaryUseCase{
		txManager:    txManager,
		canaryRepo:   canaryRepo,
		eventRepo:    eventRepo,
		tokenFactory: tokenFactory,
	}
}

// now returns the current UTC time at microsecond precision, the finest resolution
// every supported store keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// validateCreateInput checks the operator supplied fields. The token type and alert
// method are checked first so their typed errors reach the caller unchanged.
func validateCreateInput(input *domain.CreateCanaryInput) error {
	if err := input.TokenType.Validate(); err != nil {
		return err
	}
	if err := input.AlertMethod.Validate(); err != nil {
		return err
	}

	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			appValidation.NoControlChars,
			validation.RuneLength(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Memo,
			validation.RuneLength(0, 1000).Error("memo must be at most 1000 characters"),
		),
		validation.Field(&input.AlertDestination,
			validation.When(
				input.AlertMethod == domain.AlertMethodEmail,
				validation.Required.Error("destination is required for email alerts"),
				appValidation.Email,
			),
			validation.When(
				input.AlertMethod == domain.AlertMethodWebhook,
				validation.Required.Error("destination is required for webhook alerts"),
				appValidation.HTTPURL,
			),
		),
		validation.Field(&input.URL,
			appValidation.HTTPURL,
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create mints and registers a new canary. A token id collision is retried with a newly
// minted canary up to maxCreateAttempts times before the conflict is returned.
func (c *canaryUseCase) Create(ctx context.Context, input *domain.CreateCanaryInput) (*domain.Canary, error) {
	if input == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "create input is required")
	}

	normalized := *input
	normalized.Name = strings.TrimSpace(normalized.Name)
	normalized.AlertDestination = strings.TrimSpace(normalized.AlertDestination)
	if normalized.AlertMethod == "" {
		normalized.AlertMethod = domain.AlertMethodConsole
	}
	if err := validateCreateInput(&normalized); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		canary, err := c.tokenFactory.Mint(service.MintInput{
			TokenType: normalized.TokenType,
			Name:      normalized.Name,
			URL:       normalized.URL,
		})
		if err != nil {
			return nil, err
		}

		canary.Memo = normalized.Memo
		canary.AlertMethod = normalized.AlertMethod
		canary.AlertDestination = normalized.AlertDestination
		canary.CreatedAt = now()

		err = c.canaryRepo.Create(ctx, canary)
		if err == nil {
			return canary, nil
		}
		if !apperrors.Is(err, domain.ErrCanaryAlreadyExists) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// Get returns the canary registered under tokenID.
func (c *canaryUseCase) Get(ctx context.Context, tokenID string) (*domain.Canary, error) {
	return c.canaryRepo.Get(ctx, tokenID)
}

// List returns all canaries, optionally restricted to one token type.
func (c *canaryUseCase) List(ctx context.Context, tokenType *domain.TokenType) ([]*domain.Canary, error) {
	if tokenType != nil {
		if err := tokenType.Validate(); err != nil {
			return nil, err
		}
	}
	return c.canaryRepo.List(ctx, tokenType)
}

// Delete removes the access events of the canary and then the canary itself. When the
// canary does not exist the transaction is rolled back and ErrCanaryNotFound returned.
func (c *canaryUseCase) Delete(ctx context.Context, tokenID string) error {
	return c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := c.eventRepo.DeleteByTokenID(ctx, tokenID); err != nil {
			return err
		}
		return c.canaryRepo.Delete(ctx, tokenID)
	})
}
