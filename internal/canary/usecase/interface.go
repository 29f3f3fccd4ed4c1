// Package usecase implements the canary registry, the append-only access log and the
// read-only reporting built on top of them.
//
// Every multi-step write runs inside a TxManager transaction so a counter is never
// visible without its access event. Repositories pick the transaction up through
// database.GetTx.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

// CanaryRepository defines the interface for canary persistence.
type CanaryRepository interface {
	// Create inserts a canary. Returns domain.ErrCanaryAlreadyExists when the token id
	// is already registered.
	Create(ctx context.Context, canary *domain.Canary) error
	Get(ctx context.Context, tokenID string) (*domain.Canary, error)

	// List returns all canaries ordered by created_at descending, ties by token id.
	// A nil tokenType returns every type.
	List(ctx context.Context, tokenType *domain.TokenType) ([]*domain.Canary, error)

	// RecordAccess increments accessed_count and sets last_accessed_at. Returns
	// domain.ErrCanaryNotFound when no row matches.
	RecordAccess(ctx context.Context, tokenID string, accessedAt time.Time) error
	Delete(ctx context.Context, tokenID string) error
}

// AccessEventRepository defines the interface for access log persistence.
type AccessEventRepository interface {
	// Create appends an event and assigns its ID.
	Create(ctx context.Context, event *domain.AccessEvent) error

	// List returns events ordered by accessed_at descending, ties by id descending.
	// A nil tokenID returns events of every canary.
	List(ctx context.Context, tokenID *string, limit int) ([]*domain.AccessEvent, error)
	DeleteByTokenID(ctx context.Context, tokenID string) (int64, error)
}

// AlertDispatcher delivers the simulated alert for a logged access.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, canary *domain.Canary, event *domain.AccessEvent) (*domain.Alert, error)
}

// CanaryUseCase defines the registry operations.
type CanaryUseCase interface {
	// Create mints a canary of the requested type and registers it. Token id collisions
	// are retried with a fresh id a bounded number of times.
	Create(ctx context.Context, input *domain.CreateCanaryInput) (*domain.Canary, error)
	Get(ctx context.Context, tokenID string) (*domain.Canary, error)
	List(ctx context.Context, tokenType *domain.TokenType) ([]*domain.Canary, error)

	// Delete removes the canary and all of its access events in one transaction.
	Delete(ctx context.Context, tokenID string) error
}

// AccessEventUseCase defines the access log operations.
type AccessEventUseCase interface {
	// LogAccess records an access against an existing canary and dispatches its alert
	// after the transaction commits.
	LogAccess(ctx context.Context, input *domain.LogAccessInput) (*domain.AccessResult, error)

	// List returns the most recent events. A limit <= 0 selects the configured default.
	List(ctx context.Context, tokenID *string, limit int) ([]*domain.AccessEvent, error)
}

// ReportUseCase defines the read-only reporting operations.
type ReportUseCase interface {
	Statistics(ctx context.Context) (*domain.Statistics, error)
	ExportSnapshot(ctx context.Context) (*domain.Snapshot, error)
}
