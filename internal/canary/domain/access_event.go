package domain

import "time"

// AccessEvent records one observed use of a canary. Events are append-only and are
// removed only together with their canary.
type AccessEvent struct {
	ID         int64
	TokenID    string
	AccessedAt time.Time
	IPAddress  *string
	UserAgent  *string
	Metadata   Metadata
}
