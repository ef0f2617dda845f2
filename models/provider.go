package models

import "time"

// ServiceOffering is one entry in a provider's service list.
type ServiceOffering struct {
	ID         string  `bson:"id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Rate       float64 `bson:"rate" json:"rate"`
	Active     bool    `bson:"active" json:"active"`
	CategoryID string  `bson:"categoryId" json:"categoryId"`
}

// DayAvailability describes a provider's working window for one weekday.
type DayAvailability struct {
	Start     string `bson:"start" json:"start"` // "HH:MM"
	End       string `bson:"end" json:"end"`
	Available bool   `bson:"available" json:"available"`
}

// ProviderProfile is the aggregate record of a provider's offerings,
// availability and derived reputation. Keyed by the provider's userId.
//
// Rating, TotalJobs and TotalEarnings are derived fields: only the
// stats aggregator writes them. Everything else is edited by the
// provider through field-scoped updates so the two writers never
// touch the same paths.
type ProviderProfile struct {
	UserID        string                     `bson:"userId" json:"userId"`
	Bio           string                     `bson:"bio,omitempty" json:"bio,omitempty"`
	Experience    string                     `bson:"experience,omitempty" json:"experience,omitempty"`
	HourlyRate    float64                    `bson:"hourlyRate" json:"hourlyRate"`
	Services      []ServiceOffering          `bson:"services" json:"services"`
	Availability  map[string]DayAvailability `bson:"availability" json:"availability"` // keyed by lowercase weekday name
	TotalJobs     int                        `bson:"totalJobs" json:"totalJobs"`
	TotalEarnings float64                    `bson:"totalEarnings" json:"totalEarnings"`
	Rating        float64                    `bson:"rating" json:"rating"` // mean of all reviews, 1 decimal
	CreatedAt     time.Time                  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time                  `bson:"updatedAt" json:"updatedAt"`
}

// ProviderDashboard is the summary a provider sees on their home
// screen: profile with current stats, upcoming and recently completed
// bookings, and how many requests await acceptance.
type ProviderDashboard struct {
	Profile      *ProviderProfile `json:"profile"`
	Upcoming     []Booking        `json:"upcoming"`
	Recent       []Booking        `json:"recent"`
	PendingCount int64            `json:"pendingCount"`
}
