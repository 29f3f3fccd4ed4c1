package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/canary/dto"
	"github.com/allisson/canarydrop/internal/canary/usecase"
)

// RunList prints registered canaries, newest first, optionally filtered by type.
// An empty tokenType lists every canary.
//
// Requirements: Database must be migrated and accessible.
func RunList(
	ctx context.Context,
	canaryUseCase usecase.CanaryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tokenType string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var filter *domain.TokenType
	if tokenType != "" {
		parsed, err := domain.ParseTokenType(tokenType)
		if err != nil {
			return err
		}
		filter = &parsed
	}

	canaries, err := canaryUseCase.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list canaries: %w", err)
	}

	logger.Debug("canaries listed", slog.Int("count", len(canaries)))

	if format == FormatJSON {
		return writeJSON(writer, dto.MapCanariesToListResponse(canaries))
	}

	outputListText(canaries, writer)
	return nil
}

// outputListText prints one block per canary.
func outputListText(canaries []*domain.Canary, writer io.Writer) {
	if len(canaries) == 0 {
		_, _ = fmt.Fprintln(writer, "No canary tokens found.")
		return
	}

	writeBanner(writer, "CANARY TOKENS")

	for _, canary := range canaries {
		_, _ = fmt.Fprintf(writer, "\n%s | %s\n", canary.Status(), strings.ToUpper(canary.TokenType.String()))
		_, _ = fmt.Fprintf(writer, "Name: %s\n", canary.Name)
		_, _ = fmt.Fprintf(writer, "Token ID: %s\n", canary.TokenID)
		_, _ = fmt.Fprintf(writer, "Created: %s\n", formatTime(canary.CreatedAt))

		if canary.IsTriggered() {
			_, _ = fmt.Fprintf(writer, "Accessed: %d times\n", canary.AccessedCount)
			if canary.LastAccessedAt != nil {
				_, _ = fmt.Fprintf(writer, "Last access: %s\n", formatTime(*canary.LastAccessedAt))
			}
		}

		if canary.Memo != "" {
			_, _ = fmt.Fprintf(writer, "Memo: %s\n", canary.Memo)
		}

		writeRule(writer)
	}

	_, _ = fmt.Fprintf(writer, "\nTotal: %d canaries\n", len(canaries))
}
