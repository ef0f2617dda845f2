package reviewRepo

import (
	"context"

	"fixly/models"
)

// ReviewRepository defines methods for review data access. Reviews
// are insert-only; the single mutation is the provider's reply.
type ReviewRepository interface {
	// Create inserts a new review. Returns apperr.Conflict when the
	// booking already has a review (unique index on bookingId).
	Create(ctx context.Context, review *models.Review) error
	// GetByID retrieves a review by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Review, error)
	// GetByBookingID retrieves the review for a booking, if any.
	GetByBookingID(ctx context.Context, bookingID string) (*models.Review, error)
	// ListByProvider returns all reviews for a provider, newest first.
	ListByProvider(ctx context.Context, providerID string) ([]models.Review, error)
	// AverageRating computes the mean rating over all of a provider's
	// reviews. Returns (0, 0, nil) when the provider has none.
	AverageRating(ctx context.Context, providerID string) (avg float64, count int, err error)
	// SetReply stores the provider's reply on a review.
	SetReply(ctx context.Context, id, reply string) error
}
