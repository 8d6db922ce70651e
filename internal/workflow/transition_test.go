// server/internal/workflow/transition_test.go
package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentTransitions(t *testing.T) {
	cases := []struct {
		name  string
		role  string
		owns  bool
		from  string
		to    string
		valid bool
	}{
		{"hospital confirms pending", "hospital", false, "pending", "confirmed", true},
		{"hospital completes confirmed", "hospital", false, "confirmed", "completed", true},
		{"admin cancels pending", "admin", false, "pending", "cancelled", true},
		{"admin cancels confirmed", "admin", false, "confirmed", "cancelled", true},
		{"donor cancels own pending", "donor", true, "pending", "cancelled", true},
		{"donor cancels someone else's", "donor", false, "pending", "cancelled", false},
		{"donor confirms own", "donor", true, "pending", "confirmed", false},
		{"donor completes own", "donor", true, "confirmed", "completed", false},
		{"recipient changes status", "recipient", false, "pending", "confirmed", false},
		{"completed is terminal", "admin", false, "completed", "confirmed", false},
		{"completed cannot repeat", "admin", false, "completed", "completed", false},
		{"cancelled is terminal", "admin", false, "cancelled", "confirmed", false},
		{"skip straight to completed", "hospital", false, "pending", "completed", false},
		{"unknown status rejected", "admin", false, "pending", "done", false},
		{"empty status rejected", "admin", false, "pending", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckAppointmentTransition(tc.role, tc.owns, tc.from, tc.to)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRequestTransitions(t *testing.T) {
	// Donor-role caller cannot reject a pending request.
	err := CheckRequestTransition("donor", "pending", "rejected")
	assert.Error(t, err)

	assert.NoError(t, CheckRequestTransition("admin", "pending", "approved"))
	assert.NoError(t, CheckRequestTransition("hospital", "pending", "rejected"))
	assert.NoError(t, CheckRequestTransition("admin", "approved", "fulfilled"))

	assert.Error(t, CheckRequestTransition("admin", "pending", "fulfilled"))
	assert.Error(t, CheckRequestTransition("admin", "rejected", "approved"))
	assert.Error(t, CheckRequestTransition("admin", "pending", "bogus"))
	assert.Error(t, CheckRequestTransition("recipient", "pending", "approved"))
}

func TestTrackingTransitions(t *testing.T) {
	assert.NoError(t, CheckTrackingTransition("hospital", "completed", "testing"))
	assert.NoError(t, CheckTrackingTransition("admin", "completed", "transfused"))

	assert.Error(t, CheckTrackingTransition("hospital", "confirmed", "testing"))
	assert.Error(t, CheckTrackingTransition("donor", "completed", "testing"))
	assert.Error(t, CheckTrackingTransition("hospital", "completed", "shipped"))
}

func TestCompletionEffectsDue(t *testing.T) {
	assert.True(t, CompletionEffectsDue("confirmed", "completed"))
	// Re-sending completed must not double-fire the stock/stat increments.
	assert.False(t, CompletionEffectsDue("completed", "completed"))
	assert.False(t, CompletionEffectsDue("confirmed", "cancelled"))
	assert.False(t, CompletionEffectsDue("pending", "confirmed"))
}
