// server/internal/models/appointment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment scheduling statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Tracking statuses describe where the donated blood is in the lab pipeline.
// They are only meaningful once the appointment is completed.
const (
	TrackingCollected  = "collected"
	TrackingTesting    = "testing"
	TrackingProcessing = "processing"
	TrackingReady      = "ready"
	TrackingTransfused = "transfused"
)

// Appointment links a donor to a blood bank visit.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Donor     primitive.ObjectID `bson:"donor" json:"donor"`
	BloodBank primitive.ObjectID `bson:"bloodBank" json:"bloodBank"`
	Date      time.Time          `bson:"date" json:"date"`
	TimeSlot  string             `bson:"timeSlot,omitempty" json:"timeSlot,omitempty"`

	Status         string `bson:"status" json:"status"`                 // pending | confirmed | completed | cancelled
	TrackingStatus string `bson:"trackingStatus" json:"trackingStatus"` // collected | testing | processing | ready | transfused

	Notes             string       `bson:"notes,omitempty" json:"notes,omitempty"`
	HealthStats       *HealthStats `bson:"healthStats,omitempty" json:"healthStats,omitempty"`
	FeedbackSubmitted bool         `bson:"feedbackSubmitted" json:"feedbackSubmitted"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
