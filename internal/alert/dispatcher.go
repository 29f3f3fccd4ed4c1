// Package alert simulates the notification sent when a canary is accessed. Email and
// webhook delivery are never performed: the alert is described to the operator and,
// when a journal is configured, appended to it as a JSON line.
package alert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

// journalMessage is the msg field of every journal entry.
const journalMessage = "canary triggered"

// Dispatcher builds simulated alerts and records them in the journal.
type Dispatcher struct {
	journal slog.Handler
}

// NewDispatcher creates a Dispatcher writing JSON lines to journal. A nil journal
// disables journaling.
func NewDispatcher(journal io.Writer) *Dispatcher {
	d := &Dispatcher{}
	if journal != nil {
		d.journal = slog.NewJSONHandler(journal, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return d
}

// Message describes what the simulated delivery would have done.
func Message(method domain.AlertMethod, destination string) string {
	switch method {
	case domain.AlertMethodEmail:
		return fmt.Sprintf("Alert would be sent to: %s", destination)
	case domain.AlertMethodWebhook:
		return fmt.Sprintf("Alert would be sent to webhook: %s", destination)
	default:
		return "Alert sent to console"
	}
}

// Dispatch builds the alert for an access event and appends it to the journal.
// The alert is stamped with the access time so journal and access log agree.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	canary *domain.Canary,
	event *domain.AccessEvent,
) (*domain.Alert, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate alert id: %w", err)
	}

	alert := &domain.Alert{
		ID:          id,
		Method:      canary.AlertMethod,
		Destination: canary.AlertDestination,
		TokenID:     canary.TokenID,
		TokenName:   canary.Name,
		TokenType:   canary.TokenType,
		Message:     Message(canary.AlertMethod, canary.AlertDestination),
		IPAddress:   event.IPAddress,
		UserAgent:   event.UserAgent,
		SentAt:      event.AccessedAt,
	}

	if d.journal == nil {
		return alert, nil
	}
	if err := d.record(ctx, alert, event); err != nil {
		return nil, fmt.Errorf("failed to write alert journal: %w", err)
	}
	return alert, nil
}

func (d *Dispatcher) record(ctx context.Context, alert *domain.Alert, event *domain.AccessEvent) error {
	record := slog.NewRecord(time.Now().UTC(), slog.LevelWarn, journalMessage, 0)
	record.AddAttrs(
		slog.String("alert_id", alert.ID.String()),
		slog.String("token_id", alert.TokenID),
		slog.String("token_name", alert.TokenName),
		slog.String("token_type", string(alert.TokenType)),
		slog.String("alert_method", string(alert.Method)),
		slog.Int64("event_id", event.ID),
		slog.Time("accessed_at", event.AccessedAt),
	)
	if alert.Destination != "" {
		record.AddAttrs(slog.String("alert_destination", alert.Destination))
	}
	if alert.IPAddress != nil {
		record.AddAttrs(slog.String("ip_address", *alert.IPAddress))
	}
	if alert.UserAgent != nil {
		record.AddAttrs(slog.String("user_agent", *alert.UserAgent))
	}
	if len(event.Metadata) > 0 {
		attrs := make([]any, 0, len(event.Metadata))
		for _, key := range event.Metadata.Keys() {
			attrs = append(attrs, slog.Any(key, event.Metadata[key]))
		}
		record.AddAttrs(slog.Group("metadata", attrs...))
	}
	return d.journal.Handle(ctx, record)
}
