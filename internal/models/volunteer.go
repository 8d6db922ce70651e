// server/internal/models/volunteer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Volunteer application statuses.
const (
	VolunteerPending  = "pending"
	VolunteerApproved = "approved"
	VolunteerRejected = "rejected"
)

// Volunteer is an application to join the organization as a volunteer.
type Volunteer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address" json:"address"`
	Reason    string             `bson:"reason" json:"reason"`
	Status    string             `bson:"status" json:"status"` // pending | approved | rejected
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
