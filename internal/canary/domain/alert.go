package domain

import (
	"time"

	"github.com/google/uuid"
)

// Alert is the simulated notification produced for one logged access. Nothing is sent
// over the network; the alert is rendered to the operator and appended to the journal.
type Alert struct {
	ID          uuid.UUID
	Method      AlertMethod
	Destination string
	TokenID     string
	TokenName   string
	TokenType   TokenType
	Message     string
	IPAddress   *string
	UserAgent   *string
	SentAt      time.Time
}
