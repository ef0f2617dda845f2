package stats

import (
	"context"

	"fixly/models"
)

// ProfileCache is the slice of the provider profile cache the
// aggregator needs: the ability to drop a stale entry after a stats
// write.
type ProfileCache interface {
	InvalidateProfile(ctx context.Context, providerID string) error
}

// Aggregator keeps a provider's derived reputation fields consistent
// with booking and review history. It is the only writer of
// totalJobs, totalEarnings and rating.
type Aggregator interface {
	// OnBookingCompleted credits a completed booking to the provider:
	// totalJobs += 1, totalEarnings += booking price.
	OnBookingCompleted(ctx context.Context, booking *models.Booking) error
	// OnReviewCreated recomputes the provider's average rating from
	// the full review set and returns the stored value.
	OnReviewCreated(ctx context.Context, providerID string) (float64, error)
}
