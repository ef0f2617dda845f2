package booking

import (
	"context"
	"time"

	"fixly/apperr"
	"fixly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking creates a pending booking after resolving both
// references. No overlap check against the provider's availability is
// made here; scheduling conflicts are a collaborator concern.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	if input.CustomerID == "" {
		return nil, apperr.Validation("customerId is required")
	}
	if input.ProviderID == "" || input.CategoryID == "" {
		return nil, apperr.Validation("providerId and categoryId are required")
	}
	if input.ScheduledDate.IsZero() {
		return nil, apperr.Validation("scheduledDate is required")
	}
	if input.Price < 0 {
		return nil, apperr.Validation("price must not be negative")
	}

	provider, err := s.Users.GetByID(ctx, input.ProviderID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.InvalidReference("provider %s does not exist", input.ProviderID)
		}
		return nil, err
	}
	if provider.Role != models.RoleProvider {
		return nil, apperr.InvalidReference("user %s is not a provider", input.ProviderID)
	}

	if _, err := s.Catalog.GetByID(ctx, input.CategoryID); err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.InvalidReference("service category %s does not exist", input.CategoryID)
		}
		return nil, err
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		CustomerID:    input.CustomerID,
		ProviderID:    input.ProviderID,
		CategoryID:    input.CategoryID,
		Status:        models.BookingPending,
		ScheduledDate: input.ScheduledDate,
		Description:   input.Description,
		Location:      input.Location,
		Price:         input.Price,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("customerId", booking.CustomerID),
		zap.String("providerId", booking.ProviderID))
	return booking, nil
}
