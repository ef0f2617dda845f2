package booking

import (
	"context"

	"fixly/apperr"
	bookingRepo "fixly/database/repository/booking"
	"fixly/models"
)

// GetBooking fetches one booking; only a party to it may read it.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != actorID && booking.ProviderID != actorID {
		return nil, apperr.AccessDenied("user %s is not a party to booking %s", actorID, bookingID)
	}
	return booking, nil
}

// ListBookings returns the user's bookings for their role side of the
// relationship, optionally filtered by exact status.
func (s *DefaultBookingService) ListBookings(ctx context.Context, userID string, role models.Role, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("unknown booking status %q", status)
	}

	filter := bookingRepo.ListFilter{Status: status}
	switch role {
	case models.RoleCustomer:
		filter.CustomerID = userID
	case models.RoleProvider:
		filter.ProviderID = userID
	default:
		return nil, apperr.Validation("unknown role %q", role)
	}
	return s.Bookings.List(ctx, filter)
}
