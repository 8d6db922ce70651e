// server/internal/badges/evaluator.go
package badges

import (
	"context"
	"time"

	"jeevan-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Donation-count thresholds and the badge each one unlocks.
var donationThresholds = []struct {
	Count int
	Type  string
}{
	{1, "first_donation"},
	{5, "five_donations"},
	{10, "ten_donations"},
	{25, "twenty_five_donations"},
	{50, "fifty_donations"},
	{100, "hundred_donations"},
}

var rareBloodGroups = map[string]bool{"AB-": true, "B-": true, "O-": true}

const weekendThreshold = 5

// Eligible derives the badge types a donor qualifies for from their completed
// donation history. It is a pure function so the award rules can be tested
// without a database.
func Eligible(completedDonations int, bloodGroup string, weekendDonations int) []string {
	var types []string
	for _, t := range donationThresholds {
		if completedDonations >= t.Count {
			types = append(types, t.Type)
		}
	}
	if rareBloodGroups[bloodGroup] && completedDonations >= 1 {
		types = append(types, "rare_blood_hero")
	}
	if weekendDonations >= weekendThreshold {
		types = append(types, "weekend_warrior")
	}
	return types
}

// CountWeekendDonations counts donation dates falling on a Saturday or Sunday.
func CountWeekendDonations(dates []time.Time) int {
	n := 0
	for _, d := range dates {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			n++
		}
	}
	return n
}

// MissingFrom filters eligible down to the types not yet in owned.
func MissingFrom(eligible []string, owned map[string]bool) []string {
	var missing []string
	for _, t := range eligible {
		if !owned[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

// TotalPoints sums the static point value of each owned badge.
func TotalPoints(badgeTypes []string) int {
	total := 0
	for _, t := range badgeTypes {
		total += models.BadgeInfo[t].Points
	}
	return total
}

// Evaluator recomputes and persists achievement badges on demand.
type Evaluator struct {
	DB *mongo.Database
}

// Evaluate re-checks a user's achievements and inserts any newly earned badge
// records. It returns the badge types awarded by this call. Evaluation is
// idempotent: the existence check plus the unique (userId, badgeType) index
// keep concurrent evaluations from double-awarding.
func (e *Evaluator) Evaluate(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	var user models.User
	if err := e.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	completedFilter := bson.M{"donor": userID, "status": models.AppointmentCompleted}
	completed, err := e.DB.Collection("appointments").CountDocuments(ctx, completedFilter)
	if err != nil {
		return nil, err
	}

	// Weekend donations need the actual dates, fetched and filtered in process.
	cursor, err := e.DB.Collection("appointments").Find(ctx, completedFilter)
	if err != nil {
		return nil, err
	}
	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(appointments))
	for _, a := range appointments {
		dates = append(dates, a.Date)
	}

	owned, err := e.ownedTypes(ctx, userID)
	if err != nil {
		return nil, err
	}

	eligible := Eligible(int(completed), user.BloodGroup, CountWeekendDonations(dates))

	var awarded []string
	for _, badgeType := range MissingFrom(eligible, owned) {
		_, err := e.DB.Collection("badges").InsertOne(ctx, models.Badge{
			UserID:    userID,
			BadgeType: badgeType,
			EarnedAt:  time.Now(),
		})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// A concurrent evaluation won the race; the badge exists.
				continue
			}
			return awarded, err
		}
		awarded = append(awarded, badgeType)
	}

	return awarded, nil
}

func (e *Evaluator) ownedTypes(ctx context.Context, userID primitive.ObjectID) (map[string]bool, error) {
	cursor, err := e.DB.Collection("badges").Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	var owned []models.Badge
	if err := cursor.All(ctx, &owned); err != nil {
		return nil, err
	}
	types := make(map[string]bool, len(owned))
	for _, b := range owned {
		types[b.BadgeType] = true
	}
	return types, nil
}
