package review

import (
	"context"
	"strings"
	"time"

	"fixly/apperr"
	"fixly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IsReviewable is true iff the booking is completed and has no review yet.
func (s *DefaultReviewService) IsReviewable(ctx context.Context, bookingID string) (bool, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if booking.Status != models.BookingCompleted {
		return false, nil
	}
	if _, err := s.Reviews.GetByBookingID(ctx, bookingID); err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// CreateReview checks the eligibility gate in order: booking exists,
// the caller is its customer, the booking is completed, no review
// exists yet, and the rating is in range. The unique index on
// bookingId backs the duplicate check against races.
func (s *DefaultReviewService) CreateReview(ctx context.Context, input models.ReviewInput) (*models.Review, error) {
	booking, err := s.Bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != input.CustomerID {
		return nil, apperr.AccessDenied("only the booking's customer may review booking %s", input.BookingID)
	}
	if booking.Status != models.BookingCompleted {
		return nil, apperr.InvalidState("cannot review a %s booking; only completed bookings are reviewable", booking.Status)
	}
	if _, err := s.Reviews.GetByBookingID(ctx, input.BookingID); err == nil {
		return nil, apperr.Conflict("booking %s already has a review", input.BookingID)
	} else if !apperr.Is(err, apperr.CodeNotFound) {
		return nil, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperr.Validation("rating must be an integer between 1 and 5, got %d", input.Rating)
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  input.BookingID,
		CustomerID: input.CustomerID,
		ProviderID: booking.ProviderID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	rating, err := s.Stats.OnReviewCreated(ctx, booking.ProviderID)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("review created",
		zap.String("reviewId", review.ID),
		zap.String("bookingId", review.BookingID),
		zap.Int("rating", review.Rating),
		zap.Float64("providerRating", rating))
	return review, nil
}

// ReplyToReview stores the provider's reply. Only the reviewed
// provider may reply, and the reply must be non-empty.
func (s *DefaultReviewService) ReplyToReview(ctx context.Context, reviewID, actorID, reply string) (*models.Review, error) {
	review, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ProviderID != actorID {
		return nil, apperr.AccessDenied("only the reviewed provider may reply to review %s", reviewID)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, apperr.Validation("reply must not be empty")
	}

	if err := s.Reviews.SetReply(ctx, reviewID, reply); err != nil {
		return nil, err
	}
	review.Reply = reply

	s.Logger.Info("review replied",
		zap.String("reviewId", reviewID),
		zap.String("providerId", actorID))
	return review, nil
}

func (s *DefaultReviewService) ListProviderReviews(ctx context.Context, providerID string) ([]models.Review, error) {
	return s.Reviews.ListByProvider(ctx, providerID)
}
