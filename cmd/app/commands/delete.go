package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/allisson/canarydrop/internal/canary/usecase"
)

// RunDelete removes a canary together with its access events. Unless skipConfirm is
// set the operator is asked first; anything but "y" or "yes" cancels.
//
// Requirements: Database must be migrated and accessible.
func RunDelete(
	ctx context.Context,
	canaryUseCase usecase.CanaryUseCase,
	logger *slog.Logger,
	streams IOTuple,
	tokenID string,
	skipConfirm bool,
) error {
	canary, err := canaryUseCase.Get(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("failed to get canary %q: %w", tokenID, err)
	}

	if !skipConfirm {
		confirmed, err := confirm(streams, fmt.Sprintf("Delete canary '%s'? (y/N): ", canary.Name))
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(streams.Writer, "Cancelled.")
			return nil
		}
	}

	if err := canaryUseCase.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to delete canary %q: %w", tokenID, err)
	}

	_, _ = fmt.Fprintf(streams.Writer, "\nCanary token '%s' deleted successfully.\n", canary.Name)

	logger.Info("canary deleted",
		slog.String("token_id", tokenID),
		slog.String("name", canary.Name),
	)

	return nil
}

// confirm prints prompt and reads a yes/no answer. Empty input counts as no.
func confirm(streams IOTuple, prompt string) (bool, error) {
	_, _ = fmt.Fprint(streams.Writer, prompt)

	answer, err := bufio.NewReader(streams.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
