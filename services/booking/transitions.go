package booking

import (
	"context"
	"time"

	"fixly/apperr"
	"fixly/models"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) lockBooking(bookingID string) func() {
	key := "booking:" + bookingID
	s.Locks.Lock(key)
	return func() { s.Locks.Unlock(key) }
}

// staleTransition rewrites a conditional-write miss as the transition
// error the caller would have seen reading the current status. The
// lock serializes transitions in this process, so a miss means another
// instance moved the booking first.
func (s *DefaultBookingService) staleTransition(ctx context.Context, bookingID, verb string, err error) error {
	if !apperr.Is(err, apperr.CodeConflict) {
		return err
	}
	current, readErr := s.Bookings.GetByID(ctx, bookingID)
	if readErr != nil {
		return err
	}
	return apperr.InvalidTransition("cannot %s a %s booking", verb, current.Status)
}

// AcceptBooking moves pending -> accepted. Only the booked provider
// may accept.
func (s *DefaultBookingService) AcceptBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	unlock := s.lockBooking(bookingID)
	defer unlock()

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ProviderID != actorID {
		return nil, apperr.AccessDenied("only the booked provider may accept booking %s", bookingID)
	}
	if booking.Status != models.BookingPending {
		return nil, apperr.InvalidTransition("cannot accept a %s booking", booking.Status)
	}

	updated, err := s.Bookings.UpdateStatus(ctx, bookingID, models.BookingPending, models.BookingAccepted, nil)
	if err != nil {
		return nil, s.staleTransition(ctx, bookingID, "accept", err)
	}
	s.Logger.Info("booking accepted", zap.String("bookingId", bookingID))
	return updated, nil
}

// CancelBooking moves pending|accepted -> cancelled. Either party to
// the booking may cancel; re-cancelling fails rather than silently
// succeeding.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	unlock := s.lockBooking(bookingID)
	defer unlock()

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != actorID && booking.ProviderID != actorID {
		return nil, apperr.AccessDenied("user %s is not a party to booking %s", actorID, bookingID)
	}
	if !booking.Status.CanTransitionTo(models.BookingCancelled) {
		return nil, apperr.InvalidTransition("cannot cancel a %s booking", booking.Status)
	}

	updated, err := s.Bookings.UpdateStatus(ctx, bookingID, booking.Status, models.BookingCancelled, nil)
	if err != nil {
		return nil, s.staleTransition(ctx, bookingID, "cancel", err)
	}
	s.Logger.Info("booking cancelled",
		zap.String("bookingId", bookingID),
		zap.String("cancelledBy", actorID))
	return updated, nil
}

// CompleteBooking moves accepted -> completed, stamps completedDate
// and credits the provider's job and earnings counters. A pending
// booking cannot be completed directly; it must be accepted first.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	unlock := s.lockBooking(bookingID)
	defer unlock()

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ProviderID != actorID {
		return nil, apperr.AccessDenied("only the booked provider may complete booking %s", bookingID)
	}
	if booking.Status != models.BookingAccepted {
		return nil, apperr.InvalidTransition("cannot complete a %s booking; it must be accepted first", booking.Status)
	}

	completedAt := time.Now().UTC()
	updated, err := s.Bookings.UpdateStatus(ctx, bookingID, models.BookingAccepted, models.BookingCompleted, &completedAt)
	if err != nil {
		return nil, s.staleTransition(ctx, bookingID, "complete", err)
	}
	if err := s.Stats.OnBookingCompleted(ctx, updated); err != nil {
		return nil, err
	}

	s.Logger.Info("booking completed",
		zap.String("bookingId", bookingID),
		zap.String("providerId", booking.ProviderID),
		zap.Float64("price", booking.Price))
	return updated, nil
}
