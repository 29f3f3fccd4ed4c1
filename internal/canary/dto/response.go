// Package dto provides the JSON documents printed by the CLI and written to export files.
package dto

import (
	"time"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

// CanaryResponse represents a canary in JSON output. Status and Payload are derived.
type CanaryResponse struct {
	TokenID          string          `json:"token_id"`
	TokenType        string          `json:"token_type"`
	Name             string          `json:"name"`
	Memo             string          `json:"memo"`
	AlertMethod      string          `json:"alert_method"`
	AlertDestination string          `json:"alert_destination"`
	CreatedAt        time.Time       `json:"created_at"`
	AccessedCount    int64           `json:"accessed_count"`
	LastAccessedAt   *time.Time      `json:"last_accessed_at"`
	Status           string          `json:"status"`
	Payload          string          `json:"payload"`
	Metadata         domain.Metadata `json:"metadata"`
}

// MapCanaryToResponse converts a domain canary to its JSON form.
func MapCanaryToResponse(canary *domain.Canary) CanaryResponse {
	return CanaryResponse{
		TokenID:          canary.TokenID,
		TokenType:        string(canary.TokenType),
		Name:             canary.Name,
		Memo:             canary.Memo,
		AlertMethod:      string(canary.AlertMethod),
		AlertDestination: canary.AlertDestination,
		CreatedAt:        canary.CreatedAt,
		AccessedCount:    canary.AccessedCount,
		LastAccessedAt:   canary.LastAccessedAt,
		Status:           string(canary.Status()),
		Payload:          canary.Payload(),
		Metadata:         canary.Metadata,
	}
}

// ListCanariesResponse represents a list of canaries in JSON output.
type ListCanariesResponse struct {
	Data []CanaryResponse `json:"data"`
}

// MapCanariesToListResponse converts domain canaries to a list response.
func MapCanariesToListResponse(canaries []*domain.Canary) ListCanariesResponse {
	return ListCanariesResponse{Data: mapCanaries(canaries)}
}

func mapCanaries(canaries []*domain.Canary) []CanaryResponse {
	responses := make([]CanaryResponse, 0, len(canaries))
	for _, canary := range canaries {
		responses = append(responses, MapCanaryToResponse(canary))
	}
	return responses
}

// AccessEventResponse represents an access event in JSON output.
type AccessEventResponse struct {
	ID         int64           `json:"id"`
	TokenID    string          `json:"token_id"`
	AccessedAt time.Time       `json:"accessed_at"`
	IPAddress  *string         `json:"ip_address"`
	UserAgent  *string         `json:"user_agent"`
	Metadata   domain.Metadata `json:"metadata"`
}

// MapAccessEventToResponse converts a domain access event to its JSON form.
func MapAccessEventToResponse(event *domain.AccessEvent) AccessEventResponse {
	return AccessEventResponse{
		ID:         event.ID,
		TokenID:    event.TokenID,
		AccessedAt: event.AccessedAt,
		IPAddress:  event.IPAddress,
		UserAgent:  event.UserAgent,
		Metadata:   event.Metadata,
	}
}

// ListAccessEventsResponse represents a list of access events in JSON output.
type ListAccessEventsResponse struct {
	Data []AccessEventResponse `json:"data"`
}

// MapAccessEventsToListResponse converts domain access events to a list response.
func MapAccessEventsToListResponse(events []*domain.AccessEvent) ListAccessEventsResponse {
	return ListAccessEventsResponse{Data: mapAccessEvents(events)}
}

func mapAccessEvents(events []*domain.AccessEvent) []AccessEventResponse {
	responses := make([]AccessEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, MapAccessEventToResponse(event))
	}
	return responses
}

// AlertResponse represents a simulated alert in JSON output.
type AlertResponse struct {
	ID          string    `json:"id"`
	Method      string    `json:"method"`
	Destination string    `json:"destination,omitempty"`
	Message     string    `json:"message"`
	SentAt      time.Time `json:"sent_at"`
}

// MapAlertToResponse converts a domain alert to its JSON form.
func MapAlertToResponse(alert *domain.Alert) AlertResponse {
	return AlertResponse{
		ID:          alert.ID.String(),
		Method:      string(alert.Method),
		Destination: alert.Destination,
		Message:     alert.Message,
		SentAt:      alert.SentAt,
	}
}

// AccessResultResponse is printed after a logged access. Alert is omitted when the
// dispatcher failed.
type AccessResultResponse struct {
	Canary CanaryResponse      `json:"canary"`
	Event  AccessEventResponse `json:"event"`
	Alert  *AlertResponse      `json:"alert,omitempty"`
}

// MapAccessResultToResponse converts an access result to its JSON form.
func MapAccessResultToResponse(result *domain.AccessResult) AccessResultResponse {
	response := AccessResultResponse{
		Canary: MapCanaryToResponse(result.Canary),
		Event:  MapAccessEventToResponse(result.Event),
	}
	if result.Alert != nil {
		alert := MapAlertToResponse(result.Alert)
		response.Alert = &alert
	}
	return response
}

// TypeCountResponse is one entry of the per type breakdown.
type TypeCountResponse struct {
	TokenType string `json:"token_type"`
	Count     int    `json:"count"`
}

// StatisticsResponse represents registry statistics in JSON output.
type StatisticsResponse struct {
	Total             int                 `json:"total"`
	Active            int                 `json:"active"`
	Triggered         int                 `json:"triggered"`
	ByType            []TypeCountResponse `json:"by_type"`
	TotalAccessEvents int                 `json:"total_access_events"`
	MostRecentAccess  *time.Time          `json:"most_recent_access"`
}

// MapStatisticsToResponse converts domain statistics to their JSON form.
func MapStatisticsToResponse(stats *domain.Statistics) StatisticsResponse {
	byType := make([]TypeCountResponse, 0, len(stats.ByType))
	for _, tc := range stats.ByType {
		byType = append(byType, TypeCountResponse{TokenType: string(tc.TokenType), Count: tc.Count})
	}
	return StatisticsResponse{
		Total:             stats.Total,
		Active:            stats.Active,
		Triggered:         stats.Triggered,
		ByType:            byType,
		TotalAccessEvents: stats.TotalAccessEvents,
		MostRecentAccess:  stats.MostRecentAccess,
	}
}
