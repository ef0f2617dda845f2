package models

// ServiceCategory is reference data: a kind of service offered on the
// platform with a recommended base price. Seeded at startup and
// read-only afterwards.
type ServiceCategory struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"` // unique
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice   float64 `bson:"basePrice" json:"basePrice"`
}
