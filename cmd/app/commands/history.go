package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/canary/dto"
	"github.com/allisson/canarydrop/internal/canary/usecase"
)

// RunHistory prints the most recent access events, newest first, optionally for a
// single canary. With a token filter and no events it reports whether the canary exists
// but was never accessed; an unknown token is an error.
//
// Requirements: Database must be migrated and accessible.
func RunHistory(
	ctx context.Context,
	canaryUseCase usecase.CanaryUseCase,
	accessEventUseCase usecase.AccessEventUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tokenID string,
	limit int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("limit must be a positive number, got: %d", limit)
	}

	var filter *string
	if tokenID != "" {
		filter = &tokenID
	}

	events, err := accessEventUseCase.List(ctx, filter, limit)
	if err != nil {
		return fmt.Errorf("failed to list access events: %w", err)
	}

	logger.Debug("access events listed",
		slog.String("token_id", tokenID),
		slog.Int("count", len(events)),
	)

	if len(events) == 0 && filter != nil {
		// Tell an untouched canary apart from an unknown token id
		if _, err := canaryUseCase.Get(ctx, tokenID); err != nil {
			if errors.Is(err, domain.ErrCanaryNotFound) {
				return fmt.Errorf("token %q not found: %w", tokenID, err)
			}
			return fmt.Errorf("failed to get canary %q: %w", tokenID, err)
		}
	}

	if format == FormatJSON {
		return writeJSON(writer, dto.MapAccessEventsToListResponse(events))
	}

	if len(events) == 0 {
		if filter != nil {
			_, _ = fmt.Fprintf(writer, "\nToken '%s' exists but has not been accessed yet.\n", tokenID)
		} else {
			_, _ = fmt.Fprintln(writer, "No access logs found.")
		}
		return nil
	}

	canaries, err := canaryUseCase.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list canaries: %w", err)
	}

	outputHistoryText(events, indexCanaries(canaries), writer)
	return nil
}

func indexCanaries(canaries []*domain.Canary) map[string]*domain.Canary {
	index := make(map[string]*domain.Canary, len(canaries))
	for _, canary := range canaries {
		index[canary.TokenID] = canary
	}
	return index
}

// outputHistoryText prints one alert block per event.
func outputHistoryText(events []*domain.AccessEvent, canaries map[string]*domain.Canary, writer io.Writer) {
	writeBanner(writer, "CANARY ACCESS LOGS")

	for _, event := range events {
		_, _ = fmt.Fprintf(writer, "\nALERT - %s\n", formatTime(event.AccessedAt))
		_, _ = fmt.Fprintf(writer, "Token: %s\n", event.TokenID)

		if canary, ok := canaries[event.TokenID]; ok {
			_, _ = fmt.Fprintf(writer, "Name: %s\n", canary.Name)
			_, _ = fmt.Fprintf(writer, "Type: %s\n", canary.TokenType)
		}
		if event.IPAddress != nil {
			_, _ = fmt.Fprintf(writer, "IP Address: %s\n", *event.IPAddress)
		}
		if event.UserAgent != nil {
			_, _ = fmt.Fprintf(writer, "User Agent: %s\n", *event.UserAgent)
		}
		if len(event.Metadata) > 0 {
			_, _ = fmt.Fprintln(writer, "Additional Info:")
			writeMetadata(event.Metadata, writer)
		}

		writeRule(writer)
	}

	_, _ = fmt.Fprintf(writer, "\nTotal: %d access events\n", len(events))
}
