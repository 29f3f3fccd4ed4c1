package domain

import (
	"sort"
	"time"
)

// TypeCount is the number of canaries of one token type.
type TypeCount struct {
	TokenType TokenType
	Count     int
}

// Statistics summarizes the registry. Active + Triggered always equals Total.
type Statistics struct {
	Total             int
	Active            int
	Triggered         int
	ByType            []TypeCount
	TotalAccessEvents int
	MostRecentAccess  *time.Time
}

// Snapshot is a consistent copy of the registry taken inside one read transaction.
type Snapshot struct {
	ExportedAt   time.Time
	Canaries     []*Canary
	AccessEvents []*AccessEvent
}

// NewStatistics computes registry statistics. ByType is ordered by count descending,
// then by type name.
func NewStatistics(canaries []*Canary, events []*AccessEvent) *Statistics {
	stats := &Statistics{
		Total:             len(canaries),
		TotalAccessEvents: len(events),
	}

	counts := make(map[TokenType]int)
	for _, c := range canaries {
		if c.IsTriggered() {
			stats.Triggered++
		} else {
			stats.Active++
		}
		counts[c.TokenType]++
	}

	stats.ByType = make([]TypeCount, 0, len(counts))
	for tokenType, count := range counts {
		stats.ByType = append(stats.ByType, TypeCount{TokenType: tokenType, Count: count})
	}
	sort.Slice(stats.ByType, func(i, j int) bool {
		if stats.ByType[i].Count != stats.ByType[j].Count {
			return stats.ByType[i].Count > stats.ByType[j].Count
		}
		return stats.ByType[i].TokenType < stats.ByType[j].TokenType
	})

	for _, e := range events {
		if stats.MostRecentAccess == nil || e.AccessedAt.After(*stats.MostRecentAccess) {
			accessedAt := e.AccessedAt
			stats.MostRecentAccess = &accessedAt
		}
	}

	return stats
}
