// server/internal/models/bloodbank.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blood bank statuses. Status is set by hospital/admin and is not derived from
// the stock levels.
const (
	BankStatusActive     = "Active"
	BankStatusInactive   = "Inactive"
	BankStatusOutOfStock = "Out of Stock"
)

// BloodBank is a facility holding per-blood-group stock.
type BloodBank struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Phone   string             `bson:"phone" json:"phone"`
	Address Address            `bson:"address,omitempty" json:"address,omitempty"`

	Location GeoPoint `bson:"location,omitempty" json:"location,omitempty"`

	// Stock maps the eight blood group keys to unit counts.
	Stock map[string]int `bson:"stock" json:"stock"`

	// Admins are the hospital users allowed to manage this bank.
	Admins []primitive.ObjectID `bson:"admins,omitempty" json:"admins,omitempty"`

	Status    string    `bson:"status" json:"status"` // Active | Inactive | Out of Stock
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// EmptyStock returns a stock map with all eight groups set to zero.
func EmptyStock() map[string]int {
	stock := make(map[string]int, len(BloodGroups))
	for _, g := range BloodGroups {
		stock[g] = 0
	}
	return stock
}
