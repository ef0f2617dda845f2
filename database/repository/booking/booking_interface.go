package bookingRepo

import (
	"context"
	"time"

	"fixly/models"
)

// ListFilter narrows a booking listing.
type ListFilter struct {
	CustomerID string
	ProviderID string
	Status     models.BookingStatus // empty means any
}

// BookingRepository defines methods for booking data access. Bookings
// are only ever inserted and status-patched, never deleted.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus transitions a booking from one status to another.
	// The write is conditional on the current status so a stale
	// transition never clobbers a concurrent one; completedDate is
	// set when non-nil. Returns the updated booking, or
	// apperr.Conflict when the booking was no longer in `from`.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, completedDate *time.Time) (*models.Booking, error)
	// List returns bookings matching the filter, newest first. An
	// accepted-only filter instead sorts ascending by scheduled date,
	// ties broken by creation time, so the listing reads as a schedule.
	List(ctx context.Context, filter ListFilter) ([]models.Booking, error)
	// UpcomingByProvider returns accepted bookings for a provider
	// sorted ascending by scheduled date, ties by creation time.
	UpcomingByProvider(ctx context.Context, providerID string, limit int64) ([]models.Booking, error)
	// RecentCompletedByProvider returns completed bookings for a
	// provider, most recently completed first.
	RecentCompletedByProvider(ctx context.Context, providerID string, limit int64) ([]models.Booking, error)
	// CountByProviderAndStatus counts a provider's bookings in a status.
	CountByProviderAndStatus(ctx context.Context, providerID string, status models.BookingStatus) (int64, error)
}
