package models

import "time"

// Review is a customer's 1-5 rating of a completed booking. At most
// one review exists per booking; the reviews collection carries a
// unique index on bookingId to enforce that.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	CustomerID string    `bson:"customerId" json:"customerId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Rating     int       `bson:"rating" json:"rating"` // 1..5
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Reply      string    `bson:"reply,omitempty" json:"reply,omitempty"` // provider's annotation; never affects rating
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewInput carries the client payload for creating a review.
type ReviewInput struct {
	CustomerID string `json:"-"`
	BookingID  string `json:"bookingId" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}
