package domain

// CreateCanaryInput holds the operator supplied fields of a new canary.
type CreateCanaryInput struct {
	TokenType        TokenType
	Name             string
	Memo             string
	AlertMethod      AlertMethod
	AlertDestination string
	// URL is the destination encoded by qr-code tokens. Optional.
	URL string
}

// LogAccessInput describes one observed use of a canary.
type LogAccessInput struct {
	TokenID   string
	IPAddress *string
	UserAgent *string
	Metadata  Metadata
}

// AccessResult is returned when an access is logged. Alert is nil when dispatching
// failed; the access itself is recorded either way.
type AccessResult struct {
	Canary *Canary
	Event  *AccessEvent
	Alert  *Alert
}
