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

// RunStats prints registry statistics.
func RunStats(
	ctx context.Context,
	reportUseCase usecase.ReportUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	stats, err := reportUseCase.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	logger.Debug("statistics computed",
		slog.Int("total", stats.Total),
		slog.Int("triggered", stats.Triggered),
	)

	if format == FormatJSON {
		return writeJSON(writer, dto.MapStatisticsToResponse(stats))
	}

	outputStatsText(stats, writer)
	return nil
}

func outputStatsText(stats *domain.Statistics, writer io.Writer) {
	writeBanner(writer, "CANARY TOKEN STATISTICS")

	_, _ = fmt.Fprintf(writer, "\nTotal Canaries: %d\n", stats.Total)
	_, _ = fmt.Fprintf(writer, "Active (Never Triggered): %d\n", stats.Active)
	_, _ = fmt.Fprintf(writer, "Triggered: %d\n", stats.Triggered)

	if len(stats.ByType) > 0 {
		_, _ = fmt.Fprintln(writer, "\nCanaries by Type:")
		for _, tc := range stats.ByType {
			_, _ = fmt.Fprintf(writer, "  %s: %d\n", tc.TokenType, tc.Count)
		}
	}

	_, _ = fmt.Fprintf(writer, "\nTotal Access Events: %d\n", stats.TotalAccessEvents)
	if stats.MostRecentAccess != nil {
		_, _ = fmt.Fprintf(writer, "Most Recent Access: %s\n", formatTime(*stats.MostRecentAccess))
	}
}
