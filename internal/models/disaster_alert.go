// server/internal/models/disaster_alert.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DisasterAlert is a system-wide emergency broadcast requesting specific blood
// types. By convention at most one alert is active at a time.
type DisasterAlert struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title               string              `bson:"title" json:"title"`
	Description         string              `bson:"description" json:"description"`
	Location            string              `bson:"location" json:"location"`
	Radius              float64             `bson:"radius" json:"radius"` // kilometers
	RequiredBloodGroups []string            `bson:"requiredBloodGroups" json:"requiredBloodGroups"`
	IsActive            bool                `bson:"isActive" json:"isActive"`
	CreatedBy           *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
}
