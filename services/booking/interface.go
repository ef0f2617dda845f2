package booking

import (
	"context"

	bookingRepo "fixly/database/repository/booking"
	catalogRepo "fixly/database/repository/catalog"
	userRepo "fixly/database/repository/user"
	"fixly/models"
	"fixly/services/stats"
	"fixly/utils"

	"go.uber.org/zap"
)

// BookingService owns the booking state machine. It is the single
// writer of booking status; all transitions on one booking are
// serialized through a per-booking lock.
type BookingService interface {
	// CreateBooking validates the referenced provider and category
	// and creates a pending booking.
	CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	// AcceptBooking moves a pending booking to accepted. Provider only.
	AcceptBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	// CancelBooking moves a pending or accepted booking to cancelled.
	// Either party to the booking may cancel.
	CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	// CompleteBooking moves an accepted booking to completed, stamps
	// completedDate and credits the provider's stats. Provider only.
	CompleteBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	// GetBooking fetches one booking; only a party to it may read it.
	GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	// ListBookings returns the user's bookings for their role side,
	// optionally filtered by exact status.
	ListBookings(ctx context.Context, userID string, role models.Role, status models.BookingStatus) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Catalog  catalogRepo.CatalogRepository
	Stats    stats.Aggregator
	Locks    *utils.KeyedMutex
	Logger   *zap.Logger
}

// NewDefaultBookingService wires a booking service with its own lock set.
func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	users userRepo.UserRepository,
	catalog catalogRepo.CatalogRepository,
	aggregator stats.Aggregator,
	logger *zap.Logger,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings: bookings,
		Users:    users,
		Catalog:  catalog,
		Stats:    aggregator,
		Locks:    utils.NewKeyedMutex(),
		Logger:   logger,
	}
}
