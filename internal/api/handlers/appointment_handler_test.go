// server/internal/api/handlers/appointment_handler_test.go
package handlers

import (
	"testing"

	"jeevan-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentAccessGuard(t *testing.T) {
	// Staff roles may touch any appointment.
	assert.True(t, canTouchAppointment(models.RoleAdmin, false))
	assert.True(t, canTouchAppointment(models.RoleHospital, false))

	// A donor may only touch their own.
	assert.True(t, canTouchAppointment(models.RoleDonor, true))
	assert.False(t, canTouchAppointment(models.RoleDonor, false))

	// Other roles get nothing on appointments they do not own, including a
	// body carrying only health stats.
	assert.False(t, canTouchAppointment(models.RoleRecipient, false))
	assert.False(t, canTouchAppointment("", false))
}
