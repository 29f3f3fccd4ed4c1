// Package postgresql implements canary and access event persistence for PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/database"
	apperrors "github.com/allisson/canarydrop/internal/errors"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const canaryColumns = `token_id, token_type, name, memo, alert_method, alert_destination, ` +
	`created_at, accessed_count, last_accessed_at, metadata`

// CanaryRepository implements canary persistence for PostgreSQL.
type CanaryRepository struct {
	db *sql.DB
}

// NewCanaryRepository creates a new PostgreSQL canary repository.
func NewCanaryRepository(db *sql.DB) *CanaryRepository {
	return &CanaryRepository{db: db}
}

// Create inserts a new canary. It returns domain.ErrCanaryAlreadyExists when the token
// id is taken.
func (r *CanaryRepository) Create(ctx context.Context, canary *domain.Canary) error {
	querier := database.GetTx(ctx, r.db)

	metadata, err := json.Marshal(canary.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal canary metadata")
	}

	query := `INSERT INTO canaries (` + canaryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = querier.ExecContext(
		ctx,
		query,
		canary.TokenID,
		string(canary.TokenType),
		canary.Name,
		canary.Memo,
		string(canary.AlertMethod),
		canary.AlertDestination,
		canary.CreatedAt.UTC(),
		canary.AccessedCount,
		canary.LastAccessedAt,
		string(metadata),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrCanaryAlreadyExists
		}
		return apperrors.Storage(err, "failed to create canary")
	}
	return nil
}

// Get retrieves a canary by token id.
func (r *CanaryRepository) Get(ctx context.Context, tokenID string) (*domain.Canary, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + canaryColumns + ` FROM canaries WHERE token_id = $1`

	canary, err := scanCanary(querier.QueryRowContext(ctx, query, tokenID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCanaryNotFound
		}
		return nil, apperrors.Storage(err, "failed to get canary")
	}
	return canary, nil
}

// List retrieves canaries newest first, optionally restricted to one token type.
func (r *CanaryRepository) List(ctx context.Context, tokenType *domain.TokenType) ([]*domain.Canary, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + canaryColumns + ` FROM canaries`
	args := []any{}
	if tokenType != nil {
		query += ` WHERE token_type = $1`
		args = append(args, string(*tokenType))
	}
	query += ` ORDER BY created_at DESC, token_id ASC`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to list canaries")
	}
	defer func() {
		_ = rows.Close()
	}()

	canaries := make([]*domain.Canary, 0)
	for rows.Next() {
		canary, err := scanCanary(rows)
		if err != nil {
			return nil, apperrors.Storage(err, "failed to scan canary")
		}
		canaries = append(canaries, canary)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate canaries")
	}

	return canaries, nil
}

// RecordAccess increments the access counter and sets last_accessed_at. It returns
// domain.ErrCanaryNotFound when no row matches.
func (r *CanaryRepository) RecordAccess(ctx context.Context, tokenID string, accessedAt time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE canaries SET accessed_count = accessed_count + 1, last_accessed_at = $1 WHERE token_id = $2`

	result, err := querier.ExecContext(ctx, query, accessedAt.UTC(), tokenID)
	if err != nil {
		return apperrors.Storage(err, "failed to record canary access")
	}
	return expectOneRow(result, "failed to record canary access")
}

// Delete removes a canary row. Access events must be deleted first in the same
// transaction.
func (r *CanaryRepository) Delete(ctx context.Context, tokenID string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM canaries WHERE token_id = $1`, tokenID)
	if err != nil {
		return apperrors.Storage(err, "failed to delete canary")
	}
	return expectOneRow(result, "failed to delete canary")
}

func expectOneRow(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage(err, message)
	}
	if affected == 0 {
		return domain.ErrCanaryNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCanary(row rowScanner) (*domain.Canary, error) {
	var canary domain.Canary
	var tokenType, alertMethod string
	var lastAccessedAt sql.NullTime
	var metadata []byte

	err := row.Scan(
		&canary.TokenID,
		&tokenType,
		&canary.Name,
		&canary.Memo,
		&alertMethod,
		&canary.AlertDestination,
		&canary.CreatedAt,
		&canary.AccessedCount,
		&lastAccessedAt,
		&metadata,
	)
	if err != nil {
		return nil, err
	}

	canary.Metadata, err = domain.ParseMetadata(metadata)
	if err != nil {
		return nil, fmt.Errorf("canary %s: %w", canary.TokenID, err)
	}

	canary.TokenType = domain.TokenType(tokenType)
	canary.AlertMethod = domain.AlertMethod(alertMethod)
	canary.CreatedAt = canary.CreatedAt.UTC()
	if lastAccessedAt.Valid {
		t := lastAccessedAt.Time.UTC()
		canary.LastAccessedAt = &t
	}
	return &canary, nil
}
