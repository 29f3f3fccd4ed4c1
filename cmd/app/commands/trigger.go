package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/canary/dto"
	"github.com/allisson/canarydrop/internal/canary/usecase"
)

// TriggerOptions holds the flags of the trigger command.
type TriggerOptions struct {
	TokenID   string
	IPAddress string
	UserAgent string
	Metadata  string
}

// RunTrigger logs a simulated access to a canary and prints the resulting alert.
// Metadata that is not a JSON object of scalars is reported and ignored; in json format the
// warning goes to the logger only so the output stays a single document.
//
// Requirements: Database must be migrated and accessible.
func RunTrigger(
	ctx context.Context,
	accessEventUseCase usecase.AccessEventUseCase,
	logger *slog.Logger,
	writer io.Writer,
	opts TriggerOptions,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	metadata, err := domain.ParseMetadata([]byte(opts.Metadata))
	if err != nil {
		logger.Warn("ignoring invalid access metadata",
			slog.String("token_id", opts.TokenID),
			slog.Any("error", err),
		)
		if format == FormatText {
			_, _ = fmt.Fprintln(writer, "Warning: Invalid JSON metadata, ignoring.")
		}
		metadata = domain.Metadata{}
	}

	result, err := accessEventUseCase.LogAccess(ctx, &domain.LogAccessInput{
		TokenID:   opts.TokenID,
		IPAddress: optionalString(opts.IPAddress),
		UserAgent: optionalString(opts.UserAgent),
		Metadata:  metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to log access for %q: %w", opts.TokenID, err)
	}

	if format == FormatJSON {
		if err := writeJSON(writer, dto.MapAccessResultToResponse(result)); err != nil {
			return err
		}
	} else {
		outputTriggerText(result, writer)
	}

	logger.Info("canary access logged",
		slog.String("token_id", result.Canary.TokenID),
		slog.Int64("event_id", result.Event.ID),
		slog.Int64("accessed_count", result.Canary.AccessedCount),
	)

	return nil
}

// outputTriggerText prints the access and the simulated alert.
func outputTriggerText(result *domain.AccessResult, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nCanary token triggered!")
	_, _ = fmt.Fprintf(writer, "Token: %s (%s)\n", result.Canary.Name, result.Canary.TokenID)
	_, _ = fmt.Fprintf(writer, "Time: %s\n", formatTime(result.Event.AccessedAt))
	if result.Event.IPAddress != nil {
		_, _ = fmt.Fprintf(writer, "IP: %s\n", *result.Event.IPAddress)
	}
	if result.Event.UserAgent != nil {
		_, _ = fmt.Fprintf(writer, "User Agent: %s\n", *result.Event.UserAgent)
	}

	if result.Alert == nil {
		_, _ = fmt.Fprintln(writer, "\nAlert could not be dispatched; the access was recorded")
		return
	}
	_, _ = fmt.Fprintf(writer, "\n%s\n", result.Alert.Message)
}

// optionalString maps an empty flag value to nil.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
