// server/internal/models/common.go
package models

// GeoPoint is a GeoJSON point, coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from longitude/latitude.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Address is a structured postal address for a blood bank.
type Address struct {
	Street string `bson:"street,omitempty" json:"street,omitempty"`
	City   string `bson:"city,omitempty" json:"city,omitempty"`
	State  string `bson:"state,omitempty" json:"state,omitempty"`
	Zip    string `bson:"zip,omitempty" json:"zip,omitempty"`
}

// HealthStats holds the vitals recorded at a donation appointment.
type HealthStats struct {
	BloodPressure string `bson:"bloodPressure,omitempty" json:"bloodPressure,omitempty"`
	Hemoglobin    string `bson:"hemoglobin,omitempty" json:"hemoglobin,omitempty"`
	Weight        string `bson:"weight,omitempty" json:"weight,omitempty"`
	Pulse         string `bson:"pulse,omitempty" json:"pulse,omitempty"`
	Temperature   string `bson:"temperature,omitempty" json:"temperature,omitempty"`
}

// BloodGroups lists the eight supported blood group keys, in stock-map order.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodGroup reports whether g is one of the eight supported groups.
func IsValidBloodGroup(g string) bool {
	for _, bg := range BloodGroups {
		if bg == g {
			return true
		}
	}
	return false
}
