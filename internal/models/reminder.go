// server/internal/models/reminder.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder types.
const (
	ReminderDonationDue      = "donation_due"
	ReminderAppointment      = "appointment_reminder"
	ReminderPostDonationCare = "post_donation_care"
	ReminderEligibility      = "eligibility_restored"
	ReminderCampaign         = "campaign"
)

// Reminder statuses.
const (
	ReminderPending   = "pending"
	ReminderSent      = "sent"
	ReminderFailed    = "failed"
	ReminderCancelled = "cancelled"
)

// Reminder is a scheduled nudge for a user.
type Reminder struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Type         string             `bson:"type" json:"type"`
	Title        string             `bson:"title" json:"title"`
	Message      string             `bson:"message" json:"message"`
	ScheduledFor time.Time          `bson:"scheduledFor" json:"scheduledFor"`
	SentAt       *time.Time         `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	Status       string             `bson:"status" json:"status"`   // pending | sent | failed | cancelled
	Channel      string             `bson:"channel" json:"channel"` // email | push | sms | in_app
	Metadata     map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
