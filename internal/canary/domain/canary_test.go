package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanary_Status(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name     string
		canary   *Canary
		expected Status
	}{
		{
			name:     "NeverAccessed_Active",
			canary:   &Canary{TokenID: "dns_1", AccessedCount: 0},
			expected: StatusActive,
		},
		{
			name:     "AccessedOnce_Triggered",
			canary:   &Canary{TokenID: "dns_1", AccessedCount: 1, LastAccessedAt: &now},
			expected: StatusTriggered,
		},
		{
			name:     "AccessedMany_Triggered",
			canary:   &Canary{TokenID: "dns_1", AccessedCount: 42, LastAccessedAt: &now},
			expected: StatusTriggered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.canary.Status())
			assert.Equal(t, tt.expected == StatusTriggered, tt.canary.IsTriggered())
		})
	}
}

func TestAlertMethod_Validate(t *testing.T) {
	for _, method := range []AlertMethod{AlertMethodConsole, AlertMethodEmail, AlertMethodWebhook} {
		assert.NoError(t, method.Validate())
	}

	assert.ErrorIs(t, AlertMethod("sms").Validate(), ErrInvalidAlertMethod)
	assert.ErrorIs(t, AlertMethod("").Validate(), ErrInvalidAlertMethod)

	assert.False(t, AlertMethodConsole.RequiresDestination())
	assert.True(t, AlertMethodEmail.RequiresDestination())
	assert.True(t, AlertMethodWebhook.RequiresDestination())
}

func TestCanary_Payload(t *testing.T) {
	c := &Canary{
		TokenID:   "dns_00112233445566778899aabbccddeeff",
		TokenType: TokenTypeDNS,
		Metadata: Metadata{
			MetaHostname:   "dns_00112233445566778899aabbccddeeff.canarytokens.local",
			MetaRecordType: "A",
		},
	}

	assert.Equal(t, "dns_00112233445566778899aabbccddeeff.canarytokens.local", c.Payload())
}
