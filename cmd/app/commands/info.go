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

// RunInfo prints every stored field of one canary, including its decoy material.
func RunInfo(
	ctx context.Context,
	canaryUseCase usecase.CanaryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tokenID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	canary, err := canaryUseCase.Get(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("failed to get canary %q: %w", tokenID, err)
	}

	logger.Debug("canary loaded", slog.String("token_id", canary.TokenID))

	if format == FormatJSON {
		return writeJSON(writer, dto.MapCanaryToResponse(canary))
	}

	outputInfoText(canary, writer)
	return nil
}

// outputInfoText prints the canary details followed by its metadata in key order.
func outputInfoText(canary *domain.Canary, writer io.Writer) {
	writeBanner(writer, fmt.Sprintf("%s CANARY TOKEN DETAILS", canary.Status()))

	_, _ = fmt.Fprintf(writer, "\nToken ID: %s\n", canary.TokenID)
	_, _ = fmt.Fprintf(writer, "Type: %s\n", canary.TokenType)
	_, _ = fmt.Fprintf(writer, "Name: %s\n", canary.Name)
	_, _ = fmt.Fprintf(writer, "Created: %s\n", formatTime(canary.CreatedAt))
	if canary.Memo != "" {
		_, _ = fmt.Fprintf(writer, "Memo: %s\n", canary.Memo)
	}

	_, _ = fmt.Fprintf(writer, "\nAlert Method: %s\n", canary.AlertMethod)
	if canary.AlertDestination != "" {
		_, _ = fmt.Fprintf(writer, "Alert Destination: %s\n", canary.AlertDestination)
	}

	_, _ = fmt.Fprintf(writer, "\nAccess Count: %d\n", canary.AccessedCount)
	if canary.LastAccessedAt != nil {
		_, _ = fmt.Fprintf(writer, "Last Accessed: %s\n", formatTime(*canary.LastAccessedAt))
	}

	if len(canary.Metadata) > 0 {
		_, _ = fmt.Fprintln(writer, "\nToken-Specific Data:")
		writeMetadata(canary.Metadata, writer)
	}
}

// writeMetadata prints metadata entries sorted by key.
func writeMetadata(metadata domain.Metadata, writer io.Writer) {
	for _, key := range metadata.Keys() {
		_, _ = fmt.Fprintf(writer, "  %s: %v\n", key, metadata[key])
	}
}
