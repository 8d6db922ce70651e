// server/internal/models/camp.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Camp statuses.
const (
	CampPending   = "pending"
	CampApproved  = "approved"
	CampRejected  = "rejected"
	CampCompleted = "completed"
)

// Camp is a proposal to host a blood donation camp.
type Camp struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizerName    string             `bson:"organizerName" json:"organizerName"`
	OrganizationName string             `bson:"organizationName" json:"organizationName"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone" json:"phone"`
	ExpectedDonors   int                `bson:"expectedDonors" json:"expectedDonors"`
	ProposedDate     time.Time          `bson:"proposedDate" json:"proposedDate"`
	Venue            string             `bson:"venue" json:"venue"`
	City             string             `bson:"city" json:"city"`
	Message          string             `bson:"message,omitempty" json:"message,omitempty"`
	Status           string             `bson:"status" json:"status"` // pending | approved | rejected | completed
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
