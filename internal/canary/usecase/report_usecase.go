package usecase

import (
	"context"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/database"
)

const (
	// DefaultStatsAccessLogLimit caps the access events read for statistics.
	DefaultStatsAccessLogLimit = 1000
	// DefaultExportAccessLogLimit caps the access events written to a snapshot.
	DefaultExportAccessLogLimit = 10000
)

// reportUseCase implements ReportUseCase. It never writes.
type reportUseCase struct {
	txManager   database.TxManager
	canaryRepo  CanaryRepository
	eventRepo   AccessEventRepository
	statsLimit  int
	exportLimit int
}

// NewReportUseCase creates a new ReportUseCase. Limits <= 0 select the package defaults.
func NewReportUseCase(
	txManager database.TxManager,
	canaryRepo CanaryRepository,
	eventRepo AccessEventRepository,
	statsLimit int,
	exportLimit int,
) ReportUseCase {
	if statsLimit <= 0 {
		statsLimit = DefaultStatsAccessLogLimit
	}
	if exportLimit <= 0 {
		exportLimit = DefaultExportAccessLogLimit
	}
	return &reportUseCase{
		txManager:   txManager,
		canaryRepo:  canaryRepo,
		eventRepo:   eventRepo,
		statsLimit:  statsLimit,
		exportLimit: exportLimit,
	}
}

// readAll loads every canary and up to limit of the most recent events in one
// transaction so both collections reflect the same state.
func (r *reportUseCase) readAll(
	ctx context.Context,
	limit int,
) (canaries []*domain.Canary, events []*domain.AccessEvent, err error) {
	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if canaries, err = r.canaryRepo.List(ctx, nil); err != nil {
			return err
		}
		events, err = r.eventRepo.List(ctx, nil, limit)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return canaries, events, nil
}

// Statistics summarizes the registry.
func (r *reportUseCase) Statistics(ctx context.Context) (*domain.Statistics, error) {
	canaries, events, err := r.readAll(ctx, r.statsLimit)
	if err != nil {
		return nil, err
	}
	return domain.NewStatistics(canaries, events), nil
}

// ExportSnapshot returns every canary and the most recent access events.
func (r *reportUseCase) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	exportedAt := now()

	canaries, events, err := r.readAll(ctx, r.exportLimit)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		ExportedAt:   exportedAt,
		Canaries:     canaries,
		AccessEvents: events,
	}, nil
}
