package review

import (
	"context"

	bookingRepo "fixly/database/repository/booking"
	reviewRepo "fixly/database/repository/review"
	"fixly/models"
	"fixly/services/stats"

	"go.uber.org/zap"
)

// ReviewService is the gate between booking state and provider
// reputation: a review may exist only for a completed booking, at
// most once per booking.
type ReviewService interface {
	// IsReviewable reports whether the booking is completed and not
	// yet reviewed.
	IsReviewable(ctx context.Context, bookingID string) (bool, error)
	// CreateReview validates eligibility, stores the review and
	// triggers the provider rating recompute.
	CreateReview(ctx context.Context, input models.ReviewInput) (*models.Review, error)
	// ReplyToReview stores the provider's annotation on a review.
	// Replies never affect the rating or review eligibility.
	ReplyToReview(ctx context.Context, reviewID, actorID, reply string) (*models.Review, error)
	// ListProviderReviews returns a provider's reviews, newest first.
	ListProviderReviews(ctx context.Context, providerID string) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Reviews  reviewRepo.ReviewRepository
	Bookings bookingRepo.BookingRepository
	Stats    stats.Aggregator
	Logger   *zap.Logger
}
