// server/internal/models/feedback.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a donor's review of a completed appointment. The appointment
// field carries a unique index, one feedback per donation.
type Feedback struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Donor       primitive.ObjectID `bson:"donor" json:"donor"`
	Appointment primitive.ObjectID `bson:"appointment" json:"appointment"`

	Rating        int    `bson:"rating" json:"rating"`               // 1-5
	Experience    string `bson:"experience" json:"experience"`       // excellent | good | average | poor
	StaffBehavior int    `bson:"staffBehavior" json:"staffBehavior"` // 1-5
	Cleanliness   int    `bson:"cleanliness" json:"cleanliness"`     // 1-5
	WaitTime      string `bson:"waitTime" json:"waitTime"`           // less_than_15 | 15_to_30 | 30_to_60 | more_than_60

	WouldRecommend bool   `bson:"wouldRecommend" json:"wouldRecommend"`
	Comments       string `bson:"comments,omitempty" json:"comments,omitempty"`
	Suggestions    string `bson:"suggestions,omitempty" json:"suggestions,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
