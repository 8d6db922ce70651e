// server/internal/api/handlers/sos_handler_test.go
package handlers

import (
	"testing"
	"time"

	"jeevan-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSOSStatusUpdateStampsResolvedAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	resolved := sosStatusUpdate(models.SOSResolved, now)
	assert.Equal(t, models.SOSResolved, resolved["status"])
	assert.Equal(t, now, resolved["resolvedAt"])

	// A false alarm also closes the alert and gets the timestamp.
	falseAlarm := sosStatusUpdate(models.SOSFalseAlarm, now)
	assert.Equal(t, models.SOSFalseAlarm, falseAlarm["status"])
	assert.Equal(t, now, falseAlarm["resolvedAt"])

	// Re-activating must not stamp anything.
	active := sosStatusUpdate(models.SOSActive, now)
	assert.Equal(t, models.SOSActive, active["status"])
	assert.NotContains(t, active, "resolvedAt")
}
