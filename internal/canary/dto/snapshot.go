package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/allisson/canarydrop/internal/canary/domain"
	apperrors "github.com/allisson/canarydrop/internal/errors"
)

// SnapshotDocument is the export file layout.
type SnapshotDocument struct {
	ExportedAt time.Time             `json:"exported_at"`
	Canaries   []CanaryResponse      `json:"canaries"`
	AccessLogs []AccessEventResponse `json:"access_logs"`
}

// MapSnapshotToDocument converts a snapshot to its export document.
func MapSnapshotToDocument(snapshot *domain.Snapshot) SnapshotDocument {
	return SnapshotDocument{
		ExportedAt: snapshot.ExportedAt,
		Canaries:   mapCanaries(snapshot.Canaries),
		AccessLogs: mapAccessEvents(snapshot.AccessEvents),
	}
}

// Encode renders the document as indented JSON followed by a newline.
func (d SnapshotDocument) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeSnapshotDocument parses an export file.
func DecodeSnapshotDocument(data []byte) (*SnapshotDocument, error) {
	var doc SnapshotDocument
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("invalid export document: %v", err))
	}
	return &doc, nil
}

// ToDomain converts the document back to a snapshot. Derived fields (status and
// payload) are recomputed from the stored fields and never read back.
func (d SnapshotDocument) ToDomain() (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{
		ExportedAt:   d.ExportedAt,
		Canaries:     make([]*domain.Canary, 0, len(d.Canaries)),
		AccessEvents: make([]*domain.AccessEvent, 0, len(d.AccessLogs)),
	}

	for _, c := range d.Canaries {
		canary, err := c.ToDomain()
		if err != nil {
			return nil, err
		}
		snapshot.Canaries = append(snapshot.Canaries, canary)
	}

	for _, e := range d.AccessLogs {
		event, err := e.ToDomain()
		if err != nil {
			return nil, err
		}
		snapshot.AccessEvents = append(snapshot.AccessEvents, event)
	}

	return snapshot, nil
}

// ToDomain converts the response back to a domain canary.
func (r CanaryResponse) ToDomain() (*domain.Canary, error) {
	tokenType, err := domain.ParseTokenType(r.TokenType)
	if err != nil {
		return nil, err
	}
	alertMethod := domain.AlertMethod(r.AlertMethod)
	if err := alertMethod.Validate(); err != nil {
		return nil, err
	}
	if r.AccessedCount < 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "negative accessed_count for %s", r.TokenID)
	}
	metadata, err := r.Metadata.Normalize()
	if err != nil {
		return nil, err
	}

	return &domain.Canary{
		TokenID:          r.TokenID,
		TokenType:        tokenType,
		Name:             r.Name,
		Memo:             r.Memo,
		AlertMethod:      alertMethod,
		AlertDestination: r.AlertDestination,
		CreatedAt:        r.CreatedAt.UTC(),
		AccessedCount:    r.AccessedCount,
		LastAccessedAt:   utcPtr(r.LastAccessedAt),
		Metadata:         metadata,
	}, nil
}

// ToDomain converts the response back to a domain access event.
func (r AccessEventResponse) ToDomain() (*domain.AccessEvent, error) {
	metadata, err := r.Metadata.Normalize()
	if err != nil {
		return nil, err
	}
	return &domain.AccessEvent{
		ID:         r.ID,
		TokenID:    r.TokenID,
		AccessedAt: r.AccessedAt.UTC(),
		IPAddress:  r.IPAddress,
		UserAgent:  r.UserAgent,
		Metadata:   metadata,
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
