package usecase

import (
	"context"
	"time"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/metrics"
)

// record emits the operation counter and duration for one call.
func record(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	m.RecordOperation(ctx, operation, time.Since(start), err)
}

// canaryUseCaseWithMetrics decorates CanaryUseCase with metrics instrumentation.
type canaryUseCaseWithMetrics struct {
	next    CanaryUseCase
	metrics metrics.BusinessMetrics
}

// NewCanaryUseCaseWithMetrics wraps a CanaryUseCase with metrics recording.
func NewCanaryUseCaseWithMetrics(useCase CanaryUseCase, m metrics.BusinessMetrics) CanaryUseCase {
	return &canaryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for canary creation.
func (c *canaryUseCaseWithMetrics) Create(
	ctx context.Context,
	input *domain.CreateCanaryInput,
) (*domain.Canary, error) {
	start := time.Now()
	canary, err := c.next.Create(ctx, input)
	record(ctx, c.metrics, "canary_create", start, err)
	return canary, err
}

// Get records metrics for canary retrieval.
func (c *canaryUseCaseWithMetrics) Get(ctx context.Context, tokenID string) (*domain.Canary, error) {
	start := time.Now()
	canary, err := c.next.Get(ctx, tokenID)
	record(ctx, c.metrics, "canary_get", start, err)
	return canary, err
}

// List records metrics for canary listing.
func (c *canaryUseCaseWithMetrics) List(
	ctx context.Context,
	tokenType *domain.TokenType,
) ([]*domain.Canary, error) {
	start := time.Now()
	canaries, err := c.next.List(ctx, tokenType)
	record(ctx, c.metrics, "canary_list", start, err)
	return canaries, err
}

// Delete records metrics for canary deletion.
func (c *canaryUseCaseWithMetrics) Delete(ctx context.Context, tokenID string) error {
	start := time.Now()
	err := c.next.Delete(ctx, tokenID)
	record(ctx, c.metrics, "canary_delete", start, err)
	return err
}

// accessEventUseCaseWithMetrics decorates AccessEventUseCase with metrics instrumentation.
type accessEventUseCaseWithMetrics struct {
	next    AccessEventUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessEventUseCaseWithMetrics wraps an AccessEventUseCase with metrics recording.
func NewAccessEventUseCaseWithMetrics(
	useCase AccessEventUseCase,
	m metrics.BusinessMetrics,
) AccessEventUseCase {
	return &accessEventUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// LogAccess records metrics for logged accesses and counts the trigger.
func (a *accessEventUseCaseWithMetrics) LogAccess(
	ctx context.Context,
	input *domain.LogAccessInput,
) (*domain.AccessResult, error) {
	start := time.Now()
	result, err := a.next.LogAccess(ctx, input)
	record(ctx, a.metrics, "access_log", start, err)
	if err == nil && result != nil && result.Canary != nil {
		a.metrics.RecordTrigger(ctx,
			string(result.Canary.TokenType),
			string(result.Canary.AlertMethod),
			result.Alert != nil,
		)
	}
	return result, err
}

// List records metrics for access history queries.
func (a *accessEventUseCaseWithMetrics) List(
	ctx context.Context,
	tokenID *string,
	limit int,
) ([]*domain.AccessEvent, error) {
	start := time.Now()
	events, err := a.next.List(ctx, tokenID, limit)
	record(ctx, a.metrics, "access_list", start, err)
	return events, err
}

// reportUseCaseWithMetrics decorates ReportUseCase with metrics instrumentation.
type reportUseCaseWithMetrics struct {
	next    ReportUseCase
	metrics metrics.BusinessMetrics
}

// NewReportUseCaseWithMetrics wraps a ReportUseCase with metrics recording.
func NewReportUseCaseWithMetrics(useCase ReportUseCase, m metrics.BusinessMetrics) ReportUseCase {
	return &reportUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Statistics records metrics for statistics reports.
func (r *reportUseCaseWithMetrics) Statistics(ctx context.Context) (*domain.Statistics, error) {
	start := time.Now()
	stats, err := r.next.Statistics(ctx)
	record(ctx, r.metrics, "report_statistics", start, err)
	return stats, err
}

// ExportSnapshot records metrics for snapshot exports.
func (r *reportUseCaseWithMetrics) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	start := time.Now()
	snapshot, err := r.next.ExportSnapshot(ctx)
	record(ctx, r.metrics, "report_export", start, err)
	return snapshot, err
}
