package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/canarydrop/internal/canary/domain"
	apperrors "github.com/allisson/canarydrop/internal/errors"
)

var canaryRowColumns = []string{
	"token_id", "token_type", "name", "memo", "alert_method", "alert_destination",
	"created_at", "accessed_count", "last_accessed_at", "metadata",
}

// createMockDB creates a sqlmock database with regexp query matching.
func createMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func testCanary() *domain.Canary {
	return &domain.Canary{
		TokenID:     "dns_00112233445566778899aabbccddeeff",
		TokenType:   domain.TokenTypeDNS,
		Name:        "router",
		AlertMethod: domain.AlertMethodConsole,
		CreatedAt:   time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		Metadata:    domain.Metadata{domain.MetaHostname: "dns_0011.canarytokens.local", domain.MetaRecordType: "A"},
	}
}

func TestCanaryRepository_Create(t *testing.T) {
	canary := testCanary()

	t.Run("Success", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectExec(`INSERT INTO canaries \(token_id, .*\) VALUES \(\?, .*\?\)`).
			WithArgs(
				canary.TokenID, "dns", "router", "", "console", "",
				canary.CreatedAt, int64(0), nil, sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), canary))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_UniqueViolation", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectExec(`INSERT INTO canaries`).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := repo.Create(context.Background(), canary)
		assert.ErrorIs(t, err, domain.ErrCanaryAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_Storage", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectExec(`INSERT INTO canaries`).WillReturnError(errors.New("connection reset"))

		err := repo.Create(context.Background(), canary)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestCanaryRepository_Get(t *testing.T) {
	canary := testCanary()

	t.Run("Success", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		lastAccess := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(canaryRowColumns).AddRow(
			canary.TokenID, "dns", "router", "", "console", "",
			canary.CreatedAt, int64(1), lastAccess,
			[]byte(`{"hostname":"dns_0011.canarytokens.local","record_type":"A"}`),
		)
		mock.ExpectQuery(`SELECT token_id, .* FROM canaries WHERE token_id = \?`).
			WithArgs(canary.TokenID).
			WillReturnRows(rows)

		got, err := repo.Get(context.Background(), canary.TokenID)
		require.NoError(t, err)

		expected := testCanary()
		expected.AccessedCount = 1
		expected.LastAccessedAt = &lastAccess
		assert.Equal(t, expected, got)
		assert.Equal(t, domain.StatusTriggered, got.Status())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectQuery(`FROM canaries WHERE token_id = \?`).
			WithArgs("dns_missing").
			WillReturnRows(sqlmock.NewRows(canaryRowColumns))

		got, err := repo.Get(context.Background(), "dns_missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrCanaryNotFound)
	})

	t.Run("Error_MalformedMetadata", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		rows := sqlmock.NewRows(canaryRowColumns).AddRow(
			canary.TokenID, "dns", "router", "", "console", "",
			canary.CreatedAt, int64(0), nil, []byte(`{"tags":["a"]}`),
		)
		mock.ExpectQuery(`FROM canaries WHERE token_id = \?`).WillReturnRows(rows)

		_, err := repo.Get(context.Background(), canary.TokenID)
		assert.ErrorIs(t, err, domain.ErrMalformedMetadata)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}

func TestCanaryRepository_List(t *testing.T) {
	canary := testCanary()

	t.Run("Success_All", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		rows := sqlmock.NewRows(canaryRowColumns).
			AddRow("http_2", "http", "b", "", "console", "", canary.CreatedAt, int64(0), nil, []byte(`{}`)).
			AddRow("dns_1", "dns", "a", "", "console", "", canary.CreatedAt, int64(0), nil, []byte(`{}`))
		mock.ExpectQuery(`FROM canaries ORDER BY created_at DESC, token_id ASC`).
			WithArgs().
			WillReturnRows(rows)

		got, err := repo.List(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "http_2", got[0].TokenID)
		assert.Equal(t, domain.TokenTypeDNS, got[1].TokenType)
	})

	t.Run("Success_FilterByType", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectQuery(`FROM canaries WHERE token_type = \? ORDER BY created_at DESC`).
			WithArgs("sql").
			WillReturnRows(sqlmock.NewRows(canaryRowColumns))

		tokenType := domain.TokenTypeSQL
		got, err := repo.List(context.Background(), &tokenType)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_Query", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectQuery(`FROM canaries`).WillReturnError(errors.New("disk full"))

		_, err := repo.List(context.Background(), nil)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}

func TestCanaryRepository_RecordAccess(t *testing.T) {
	accessedAt := time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectExec(`UPDATE canaries SET accessed_count = accessed_count \+ 1, last_accessed_at = \? WHERE token_id = \?`).
			WithArgs(accessedAt, "dns_1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.RecordAccess(context.Background(), "dns_1", accessedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectExec(`UPDATE canaries`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RecordAccess(context.Background(), "dns_missing", accessedAt)
		assert.ErrorIs(t, err, domain.ErrCanaryNotFound)
	})
}

func TestCanaryRepository_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectExec(`DELETE FROM canaries WHERE token_id = \?`).
			WithArgs("dns_1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "dns_1"))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewCanaryRepository(db)

		mock.ExpectExec(`DELETE FROM canaries`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "dns_1"), domain.ErrCanaryNotFound)
	})
}

func TestAccessEventRepository_Create(t *testing.T) {
	db, mock := createMockDB(t)
	repo := NewAccessEventRepository(db)

	ip := "10.0.0.5"
	event := &domain.AccessEvent{
		TokenID:    "dns_1",
		AccessedAt: time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC),
		IPAddress:  &ip,
		Metadata:   domain.Metadata{},
	}

	mock.ExpectExec(`INSERT INTO access_logs .* VALUES \(\?, \?, \?, \?, \?\)`).
		WithArgs("dns_1", event.AccessedAt, ip, nil, "{}").
		WillReturnResult(sqlmock.NewResult(42, 1))

	require.NoError(t, repo.Create(context.Background(), event))
	assert.Equal(t, int64(42), event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessEventRepository_List(t *testing.T) {
	accessedAt := time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC)
	columns := []string{"id", "token_id", "accessed_at", "ip_address", "user_agent", "metadata"}

	t.Run("Success_FilterByToken", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewAccessEventRepository(db)

		rows := sqlmock.NewRows(columns).
			AddRow(int64(2), "dns_1", accessedAt, "10.0.0.5", nil, []byte(`{"via":"dig"}`)).
			AddRow(int64(1), "dns_1", accessedAt.Add(-time.Hour), nil, "curl", []byte(`{}`))
		mock.ExpectQuery(`FROM access_logs WHERE token_id = \? ORDER BY accessed_at DESC, id DESC LIMIT \?`).
			WithArgs("dns_1", 10).
			WillReturnRows(rows)

		tokenID := "dns_1"
		got, err := repo.List(context.Background(), &tokenID, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "10.0.0.5", *got[0].IPAddress)
		assert.Nil(t, got[0].UserAgent)
		assert.Equal(t, domain.Metadata{"via": "dig"}, got[0].Metadata)
		assert.Nil(t, got[1].IPAddress)
		assert.Equal(t, "curl", *got[1].UserAgent)
	})

	t.Run("Success_All", func(t *testing.T) {
		db, mock := createMockDB(t)
		repo := NewAccessEventRepository(db)

		mock.ExpectQuery(`FROM access_logs ORDER BY accessed_at DESC, id DESC LIMIT \?`).
			WithArgs(100).
			WillReturnRows(sqlmock.NewRows(columns))

		got, err := repo.List(context.Background(), nil, 100)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAccessEventRepository_DeleteByTokenID(t *testing.T) {
	db, mock := createMockDB(t)
	repo := NewAccessEventRepository(db)

	mock.ExpectExec(`DELETE FROM access_logs WHERE token_id = \?`).
		WithArgs("dns_1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteByTokenID(context.Background(), "dns_1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
