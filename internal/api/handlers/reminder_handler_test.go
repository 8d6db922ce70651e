// server/internal/api/handlers/reminder_handler_test.go
package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeEligibilityNoHistory(t *testing.T) {
	got := ComputeEligibility(nil, time.Now())
	assert.True(t, got.CanDonateNow)
	assert.Nil(t, got.LastDonation)
	assert.Nil(t, got.EligibleDate)
	assert.Equal(t, 0, got.DaysRemaining)
}

func TestComputeEligibilityInsideCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-10 * 24 * time.Hour)

	got := ComputeEligibility(&last, now)
	assert.False(t, got.CanDonateNow)
	assert.Equal(t, 46, got.DaysRemaining)
	assert.Equal(t, last.Add(56*24*time.Hour), *got.EligibleDate)
}

func TestComputeEligibilityExactBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-56 * 24 * time.Hour)

	got := ComputeEligibility(&last, now)
	assert.True(t, got.CanDonateNow)
	assert.Equal(t, 0, got.DaysRemaining)
}

func TestComputeEligibilityLongPastCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-200 * 24 * time.Hour)

	got := ComputeEligibility(&last, now)
	assert.True(t, got.CanDonateNow)
	assert.Equal(t, 0, got.DaysRemaining)
}
