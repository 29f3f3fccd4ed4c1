package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records registry activity: every use-case operation with its outcome
// and duration, and every canary trip with the alert it produced.
type BusinessMetrics interface {
	// RecordOperation counts one operation (e.g. "canary_create", "access_log",
	// "report_export") and observes its duration. A non-nil err marks it as failed.
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)

	// RecordTrigger counts a logged access by token type and alert method. alerted
	// reports whether the simulated alert was dispatched.
	RecordTrigger(ctx context.Context, tokenType, alertMethod string, alerted bool)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	triggerCounter   metric.Int64Counter
}

// NewBusinessMetrics creates the OpenTelemetry instruments under the given namespace
// (e.g. "canarydrop_operations_total").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of canary registry operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of canary registry operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	triggerCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_triggers_total", namespace),
		metric.WithDescription("Total number of canary accesses logged"),
		metric.WithUnit("{trigger}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trigger counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		triggerCounter:   triggerCounter,
	}, nil
}

// operationStatus maps an operation error to its status label.
func operationStatus(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

func (b *businessMetrics) RecordOperation(
	ctx context.Context,
	operation string,
	duration time.Duration,
	err error,
) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", operationStatus(err)),
	)
	b.operationCounter.Add(ctx, 1, attrs)
	b.durationHisto.Record(ctx, duration.Seconds(), attrs)
}

func (b *businessMetrics) RecordTrigger(ctx context.Context, tokenType, alertMethod string, alerted bool) {
	b.triggerCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("token_type", tokenType),
			attribute.String("alert_method", alertMethod),
			attribute.Bool("alerted", alerted),
		),
	)
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(context.Context, string, time.Duration, error) {}

func (n *NoOpBusinessMetrics) RecordTrigger(context.Context, string, string, bool) {}
