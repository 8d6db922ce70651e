// server/internal/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleDonor     = "donor"
	RoleRecipient = "recipient"
	RoleAdmin     = "admin"
	RoleHospital  = "hospital"
)

// User matches the documents in the "users" collection.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"` // stored lowercase, unique
	Password string             `bson:"password" json:"-"`  // bcrypt hash, never in JSON
	Role     string             `bson:"role" json:"role"`   // donor | recipient | admin | hospital
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`

	BloodGroup string   `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	Address    string   `bson:"address,omitempty" json:"address,omitempty"`
	Location   GeoPoint `bson:"location,omitempty" json:"location,omitempty"`

	// Donor specific fields
	IsAvailable      bool       `bson:"isAvailable" json:"isAvailable"`
	LastDonationDate *time.Time `bson:"lastDonationDate,omitempty" json:"lastDonationDate,omitempty"`
	HealthConditions string     `bson:"healthConditions,omitempty" json:"healthConditions,omitempty"`
	DonationCount    int        `bson:"donationCount" json:"donationCount"`
	Points           int        `bson:"points" json:"points"`

	// Hospital linkage. HospitalID is the legacy single-bank field and is kept
	// in sync with HospitalIDs when admins update it.
	HospitalIDs []primitive.ObjectID `bson:"hospitalIds,omitempty" json:"hospitalIds,omitempty"`
	HospitalID  *primitive.ObjectID  `bson:"hospitalId,omitempty" json:"hospitalId,omitempty"`

	// Registration / OTP verification
	IsVerified bool       `bson:"isVerified" json:"isVerified"`
	OTP        string     `bson:"otp,omitempty" json:"-"`
	OTPExpiry  *time.Time `bson:"otpExpiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// LinkedBankIDs returns the blood banks a hospital user manages, honouring the
// legacy single-ID field when the array is empty.
func (u *User) LinkedBankIDs() []primitive.ObjectID {
	if len(u.HospitalIDs) > 0 {
		return u.HospitalIDs
	}
	if u.HospitalID != nil {
		return []primitive.ObjectID{*u.HospitalID}
	}
	return nil
}
