package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("read-only file system")
}

func testCanary(method domain.AlertMethod, destination string) *domain.Canary {
	return &domain.Canary{
		TokenID:          "dns_0123456789abcdef0123456789abcdef",
		TokenType:        domain.TokenTypeDNS,
		Name:             "prod-db",
		AlertMethod:      method,
		AlertDestination: destination,
		AccessedCount:    1,
	}
}

func testEvent() *domain.AccessEvent {
	ip := "10.0.0.5"
	return &domain.AccessEvent{
		ID:         9,
		TokenID:    "dns_0123456789abcdef0123456789abcdef",
		AccessedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		IPAddress:  &ip,
		Metadata:   domain.Metadata{"source": "manual"},
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name        string
		method      domain.AlertMethod
		destination string
		expected    string
	}{
		{name: "Console", method: domain.AlertMethodConsole, expected: "Alert sent to console"},
		{
			name:        "Email",
			method:      domain.AlertMethodEmail,
			destination: "soc@example.com",
			expected:    "Alert would be sent to: soc@example.com",
		},
		{
			name:        "Webhook",
			method:      domain.AlertMethodWebhook,
			destination: "https://hooks.example.com/x",
			expected:    "Alert would be sent to webhook: https://hooks.example.com/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Message(tt.method, tt.destination))
		})
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_WritesJournalLine", func(t *testing.T) {
		var journal bytes.Buffer
		dispatcher := NewDispatcher(&journal)
		event := testEvent()

		alert, err := dispatcher.Dispatch(ctx, testCanary(domain.AlertMethodEmail, "soc@example.com"), event)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, alert.ID)
		assert.Equal(t, uuid.Version(7), alert.ID.Version())
		assert.Equal(t, domain.AlertMethodEmail, alert.Method)
		assert.Equal(t, "Alert would be sent to: soc@example.com", alert.Message)
		assert.Equal(t, event.AccessedAt, alert.SentAt)
		assert.Equal(t, "prod-db", alert.TokenName)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(journal.Bytes(), &entry))
		assert.Equal(t, "canary triggered", entry["msg"])
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, alert.ID.String(), entry["alert_id"])
		assert.Equal(t, "dns_0123456789abcdef0123456789abcdef", entry["token_id"])
		assert.Equal(t, "email", entry["alert_method"])
		assert.Equal(t, "soc@example.com", entry["alert_destination"])
		assert.Equal(t, "10.0.0.5", entry["ip_address"])
		assert.Equal(t, float64(9), entry["event_id"])
		assert.Equal(t, map[string]any{"source": "manual"}, entry["metadata"])
		assert.NotContains(t, entry, "user_agent")
	})

	t.Run("Success_OneLinePerAlert", func(t *testing.T) {
		var journal bytes.Buffer
		dispatcher := NewDispatcher(&journal)

		for i := 0; i < 3; i++ {
			_, err := dispatcher.Dispatch(ctx, testCanary(domain.AlertMethodConsole, ""), testEvent())
			require.NoError(t, err)
		}

		assert.Equal(t, 3, bytes.Count(journal.Bytes(), []byte("\n")))
	})

	t.Run("Success_NoJournal", func(t *testing.T) {
		dispatcher := NewDispatcher(nil)

		canary := testCanary(domain.AlertMethodWebhook, "https://hooks.example.com/x")
		alert, err := dispatcher.Dispatch(ctx, canary, testEvent())

		require.NoError(t, err)
		assert.Equal(t, "Alert would be sent to webhook: https://hooks.example.com/x", alert.Message)
	})

	t.Run("Error_JournalWriteFails", func(t *testing.T) {
		dispatcher := NewDispatcher(failingWriter{})

		alert, err := dispatcher.Dispatch(ctx, testCanary(domain.AlertMethodConsole, ""), testEvent())

		assert.Nil(t, alert)
		assert.ErrorContains(t, err, "read-only file system")
	})
}

func TestOpenJournal(t *testing.T) {
	t.Run("Success_CreatesDirectoryAndFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "alerts.log")

		journal, err := OpenJournal(JournalConfig{Path: path, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 3})
		require.NoError(t, err)

		canary := testCanary(domain.AlertMethodConsole, "")
		_, err = NewDispatcher(journal).Dispatch(context.Background(), canary, testEvent())
		require.NoError(t, err)
		require.NoError(t, journal.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "canary triggered")
	})

	t.Run("Error_EmptyPath", func(t *testing.T) {
		journal, err := OpenJournal(JournalConfig{})

		assert.Nil(t, journal)
		assert.Error(t, err)
	})
}
