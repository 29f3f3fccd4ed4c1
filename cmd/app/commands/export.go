package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/allisson/canarydrop/internal/canary/dto"
	"github.com/allisson/canarydrop/internal/canary/usecase"
)

// RunExport writes a snapshot of every canary and the most recent access events to a
// JSON file. An empty outputPath selects ExportFileName in the current directory.
// The file is created with owner-only permissions.
//
// Requirements: Database must be migrated and accessible.
func RunExport(
	ctx context.Context,
	reportUseCase usecase.ReportUseCase,
	logger *slog.Logger,
	writer io.Writer,
	outputPath string,
) error {
	snapshot, err := reportUseCase.ExportSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}

	data, err := dto.MapSnapshotToDocument(snapshot).Encode()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if outputPath == "" {
		outputPath = ExportFileName(snapshot.ExportedAt)
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	_, _ = fmt.Fprintf(
		writer,
		"\nExported %d canaries and %d logs\n",
		len(snapshot.Canaries),
		len(snapshot.AccessEvents),
	)
	_, _ = fmt.Fprintf(writer, "File: %s\n", outputPath)

	logger.Info("snapshot exported",
		slog.String("path", outputPath),
		slog.Int("canaries", len(snapshot.Canaries)),
		slog.Int("access_events", len(snapshot.AccessEvents)),
	)

	return nil
}
