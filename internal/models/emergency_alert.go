// server/internal/models/emergency_alert.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Emergency SOS statuses.
const (
	SOSActive     = "active"
	SOSResolved   = "resolved"
	SOSFalseAlarm = "false_alarm"
)

// SOSLocation is the geolocation attached to an SOS trigger.
type SOSLocation struct {
	Lat     float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	Address string  `bson:"address,omitempty" json:"address,omitempty"`
}

// EmergencyAlert is a one-tap SOS raised by a user needing blood urgently.
// User is optional, the SOS button works for anonymous visitors too.
type EmergencyAlert struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User          *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Location      SOSLocation         `bson:"location,omitempty" json:"location,omitempty"`
	Status        string              `bson:"status" json:"status"` // active | resolved | false_alarm
	ContactNumber string              `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	Message       string              `bson:"message" json:"message"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	ResolvedAt    *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}
