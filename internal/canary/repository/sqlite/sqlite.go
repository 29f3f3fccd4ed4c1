// Package sqlite implements canary and access event persistence for the embedded
// SQLite store (modernc.org/sqlite). Timestamps are stored as fixed-width UTC text so
// that lexical ORDER BY matches chronological order.
package sqlite

import (
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeLayout is the storage format for every timestamp column.
const timeLayout = "2006-01-02 15:04:05.000000000-07:00"

var parseLayouts = []string{
	timeLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// scanTime accepts the stored text as well as a time.Time, which the driver produces
// for DATETIME columns.
type scanTime struct {
	Time  time.Time
	Valid bool
}

func (s *scanTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		s.Time, s.Valid = time.Time{}, false
		return nil
	case time.Time:
		s.Time, s.Valid = v.UTC(), true
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp value of type %T", value)
	}
}

func (s *scanTime) parse(v string) error {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s.Time, s.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", v)
}

func (s *scanTime) ptr() *time.Time {
	if !s.Valid {
		return nil
	}
	t := s.Time
	return &t
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
