package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo reports whether the state machine permits s -> next.
// Allowed: pending -> accepted, accepted -> completed,
// pending|accepted -> cancelled. Terminal states allow nothing.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingAccepted || next == BookingCancelled
	case BookingAccepted:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

// Booking represents a scheduled unit of service between one customer
// and one provider for one service category. Bookings are never
// deleted; cancelled and completed bookings are retained for history.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	CustomerID    string        `bson:"customerId" json:"customerId"`
	ProviderID    string        `bson:"providerId" json:"providerId"`
	CategoryID    string        `bson:"categoryId" json:"categoryId"`
	Status        BookingStatus `bson:"status" json:"status"`
	ScheduledDate time.Time     `bson:"scheduledDate" json:"scheduledDate"`
	CompletedDate *time.Time    `bson:"completedDate,omitempty" json:"completedDate,omitempty"` // set iff status == completed
	Description   string        `bson:"description,omitempty" json:"description,omitempty"`
	Location      string        `bson:"location,omitempty" json:"location,omitempty"`
	Price         float64       `bson:"price" json:"price"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}

// BookingInput carries the client payload for creating a booking.
type BookingInput struct {
	CustomerID    string    `json:"-"`
	ProviderID    string    `json:"providerId" binding:"required"`
	CategoryID    string    `json:"categoryId" binding:"required"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Price         float64   `json:"price"`
}
