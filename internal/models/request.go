// server/internal/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blood request statuses.
const (
	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestFulfilled = "fulfilled"
	RequestRejected  = "rejected"
)

// Request urgency levels.
const (
	UrgencyNormal    = "normal"
	UrgencyUrgent    = "urgent"
	UrgencyCritical  = "critical"
	UrgencyEmergency = "emergency"
)

// Request is a recipient's ask for blood units.
type Request struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Requester     primitive.ObjectID `bson:"requester" json:"requester"`
	PatientName   string             `bson:"patientName" json:"patientName"`
	BloodGroup    string             `bson:"bloodGroup" json:"bloodGroup"`
	Units         int                `bson:"units" json:"units"`
	HospitalName  string             `bson:"hospitalName,omitempty" json:"hospitalName,omitempty"`
	ContactNumber string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	Location      GeoPoint           `bson:"location,omitempty" json:"location,omitempty"`

	Status  string `bson:"status" json:"status"`   // pending | approved | fulfilled | rejected
	Urgency string `bson:"urgency" json:"urgency"` // normal | urgent | critical | emergency

	FulfilledBy *primitive.ObjectID `bson:"fulfilledBy,omitempty" json:"fulfilledBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
