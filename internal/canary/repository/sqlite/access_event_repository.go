package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/database"
	apperrors "github.com/allisson/canarydrop/internal/errors"
)

// AccessEventRepository implements access log persistence for SQLite.
type AccessEventRepository struct {
	db *sql.DB
}

// NewAccessEventRepository creates a new SQLite access event repository.
func NewAccessEventRepository(db *sql.DB) *AccessEventRepository {
	return &AccessEventRepository{db: db}
}

// Create appends an access event and sets event.ID to the assigned id.
func (r *AccessEventRepository) Create(ctx context.Context, event *domain.AccessEvent) error {
	querier := database.GetTx(ctx, r.db)

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal access event metadata")
	}

	query := `INSERT INTO access_logs (token_id, accessed_at, ip_address, user_agent, metadata)
			  VALUES (?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		event.TokenID,
		formatTime(event.AccessedAt),
		event.IPAddress,
		event.UserAgent,
		string(metadata),
	)
	if err != nil {
		return apperrors.Storage(err, "failed to create access event")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Storage(err, "failed to read access event id")
	}
	event.ID = id
	return nil
}

// List retrieves at most limit events, most recent first, optionally for one token.
func (r *AccessEventRepository) List(
	ctx context.Context,
	tokenID *string,
	limit int,
) ([]*domain.AccessEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, token_id, accessed_at, ip_address, user_agent, metadata FROM access_logs`
	args := []any{}
	if tokenID != nil {
		query += ` WHERE token_id = ?`
		args = append(args, *tokenID)
	}
	query += ` ORDER BY accessed_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to list access events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*domain.AccessEvent, 0)
	for rows.Next() {
		var event domain.AccessEvent
		var accessedAt scanTime
		var ipAddress, userAgent sql.NullString
		var metadata string

		if err := rows.Scan(
			&event.ID,
			&event.TokenID,
			&accessedAt,
			&ipAddress,
			&userAgent,
			&metadata,
		); err != nil {
			return nil, apperrors.Storage(err, "failed to scan access event")
		}

		event.Metadata, err = domain.ParseMetadata([]byte(metadata))
		if err != nil {
			return nil, apperrors.Storage(
				fmt.Errorf("access event %d: %w", event.ID, err),
				"failed to decode access event metadata",
			)
		}
		event.AccessedAt = accessedAt.Time
		event.IPAddress = stringPtr(ipAddress)
		event.UserAgent = stringPtr(userAgent)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate access events")
	}

	return events, nil
}

// DeleteByTokenID removes every event of a canary and returns how many were deleted.
func (r *AccessEventRepository) DeleteByTokenID(ctx context.Context, tokenID string) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM access_logs WHERE token_id = ?`, tokenID)
	if err != nil {
		return 0, apperrors.Storage(err, "failed to delete access events")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Storage(err, "failed to delete access events")
	}
	return deleted, nil
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
