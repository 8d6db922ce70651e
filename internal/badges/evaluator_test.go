// server/internal/badges/evaluator_test.go
package badges

import (
	"testing"
	"time"

	"jeevan-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEligibleThresholds(t *testing.T) {
	cases := []struct {
		count    int
		expected []string
	}{
		{0, nil},
		{1, []string{"first_donation"}},
		{4, []string{"first_donation"}},
		{5, []string{"first_donation", "five_donations"}},
		{10, []string{"first_donation", "five_donations", "ten_donations"}},
		{25, []string{"first_donation", "five_donations", "ten_donations", "twenty_five_donations"}},
		{100, []string{"first_donation", "five_donations", "ten_donations", "twenty_five_donations", "fifty_donations", "hundred_donations"}},
	}

	for _, tc := range cases {
		got := Eligible(tc.count, "A+", 0)
		assert.Equal(t, tc.expected, got, "count=%d", tc.count)
	}
}

func TestEligibleRareBlood(t *testing.T) {
	for _, g := range []string{"AB-", "B-", "O-"} {
		assert.Contains(t, Eligible(1, g, 0), "rare_blood_hero", "group=%s", g)
	}
	for _, g := range []string{"A+", "A-", "B+", "AB+", "O+"} {
		assert.NotContains(t, Eligible(10, g, 0), "rare_blood_hero", "group=%s", g)
	}
	// Rare blood type alone is not enough, one completed donation is required.
	assert.NotContains(t, Eligible(0, "O-", 0), "rare_blood_hero")
}

func TestEligibleWeekendWarrior(t *testing.T) {
	assert.NotContains(t, Eligible(10, "A+", 4), "weekend_warrior")
	assert.Contains(t, Eligible(10, "A+", 5), "weekend_warrior")
	assert.Contains(t, Eligible(10, "A+", 9), "weekend_warrior")
}

func TestCountWeekendDonations(t *testing.T) {
	sat := time.Date(2025, 1, 4, 10, 0, 0, 0, time.UTC)  // Saturday
	sun := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)  // Sunday
	mon := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)  // Monday
	fri := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC) // Friday

	assert.Equal(t, 0, CountWeekendDonations(nil))
	assert.Equal(t, 2, CountWeekendDonations([]time.Time{sat, sun, mon, fri}))
}

func TestMissingFromIsIdempotent(t *testing.T) {
	eligible := Eligible(5, "O-", 0)

	// First evaluation awards everything.
	first := MissingFrom(eligible, map[string]bool{})
	assert.ElementsMatch(t, []string{"first_donation", "five_donations", "rare_blood_hero"}, first)

	// Second evaluation with the same history awards nothing.
	owned := map[string]bool{}
	for _, tpe := range first {
		owned[tpe] = true
	}
	assert.Empty(t, MissingFrom(eligible, owned))
}

func TestFirstRareDonationScenario(t *testing.T) {
	// Donor with blood group O- completing their first donation earns both
	// first_donation and rare_blood_hero.
	got := MissingFrom(Eligible(1, "O-", 0), map[string]bool{})
	assert.ElementsMatch(t, []string{"first_donation", "rare_blood_hero"}, got)
}

func TestTotalPoints(t *testing.T) {
	assert.Equal(t, 0, TotalPoints(nil))
	assert.Equal(t,
		models.BadgeInfo["first_donation"].Points+models.BadgeInfo["rare_blood_hero"].Points,
		TotalPoints([]string{"first_donation", "rare_blood_hero"}))
}
