package domain

import (
	"fmt"
	"time"
)

// Status is the trigger state derived from a canary's access count.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusTriggered Status = "TRIGGERED"
)

// AlertMethod selects how an access is reported.
type AlertMethod string

const (
	AlertMethodConsole AlertMethod = "console"
	AlertMethodEmail   AlertMethod = "email"
	AlertMethodWebhook AlertMethod = "webhook"
)

// Validate checks if the alert method is supported.
func (a AlertMethod) Validate() error {
	switch a {
	case AlertMethodConsole, AlertMethodEmail, AlertMethodWebhook:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAlertMethod, string(a))
	}
}

// RequiresDestination reports whether the method needs an address or URL.
func (a AlertMethod) RequiresDestination() bool {
	return a == AlertMethodEmail || a == AlertMethodWebhook
}

// Canary is a registered decoy token. TokenID, TokenType, Name, Memo, the alert fields,
// CreatedAt and Metadata are fixed at creation; only AccessedCount and LastAccessedAt
// change, and only through a logged access.
type Canary struct {
	TokenID          string
	TokenType        TokenType
	Name             string
	Memo             string
	AlertMethod      AlertMethod
	AlertDestination string
	CreatedAt        time.Time
	AccessedCount    int64
	LastAccessedAt   *time.Time
	Metadata         Metadata
}

// Status returns ACTIVE until the first logged access and TRIGGERED afterwards.
func (c *Canary) Status() Status {
	if c.AccessedCount == 0 {
		return StatusActive
	}
	return StatusTriggered
}

// IsTriggered reports whether the canary has been accessed at least once.
func (c *Canary) IsTriggered() bool {
	return c.Status() == StatusTriggered
}

// Payload returns the planted value for the canary. See Payload.
func (c *Canary) Payload() string {
	return Payload(c.TokenType, c.Metadata)
}
