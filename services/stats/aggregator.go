package stats

import (
	"context"
	"fmt"
	"math"

	providerRepo "fixly/database/repository/provider"
	reviewRepo "fixly/database/repository/review"
	"fixly/models"
	"fixly/utils"

	"go.uber.org/zap"
)

// DefaultAggregator implements Aggregator.
type DefaultAggregator struct {
	Providers providerRepo.ProviderRepository
	Reviews   reviewRepo.ReviewRepository
	Cache     ProfileCache // optional
	Locks     *utils.KeyedMutex
	Logger    *zap.Logger
}

// NewDefaultAggregator wires an aggregator with its own lock set.
func NewDefaultAggregator(providers providerRepo.ProviderRepository, reviews reviewRepo.ReviewRepository, cache ProfileCache, logger *zap.Logger) *DefaultAggregator {
	return &DefaultAggregator{
		Providers: providers,
		Reviews:   reviews,
		Cache:     cache,
		Locks:     utils.NewKeyedMutex(),
		Logger:    logger,
	}
}

func (a *DefaultAggregator) lockProvider(providerID string) func() {
	key := "provider:" + providerID
	a.Locks.Lock(key)
	return func() { a.Locks.Unlock(key) }
}

// OnBookingCompleted bumps the provider's job and earnings counters.
// The store-level $inc is already atomic; the per-provider lock keeps
// the counter write ordered with any concurrent rating recompute.
func (a *DefaultAggregator) OnBookingCompleted(ctx context.Context, booking *models.Booking) error {
	unlock := a.lockProvider(booking.ProviderID)
	defer unlock()

	if err := a.Providers.IncrementStats(ctx, booking.ProviderID, booking.Price); err != nil {
		return fmt.Errorf("failed to credit completed booking %s: %w", booking.ID, err)
	}
	a.invalidate(ctx, booking.ProviderID)

	a.Logger.Info("credited completed booking",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", booking.ProviderID),
		zap.Float64("earnings", booking.Price))
	return nil
}

// OnReviewCreated recomputes the mean over all of the provider's
// reviews rather than folding the new rating into a running average,
// so replaying review history always converges on the same value.
func (a *DefaultAggregator) OnReviewCreated(ctx context.Context, providerID string) (float64, error) {
	unlock := a.lockProvider(providerID)
	defer unlock()

	avg, count, err := a.Reviews.AverageRating(ctx, providerID)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute rating for provider %s: %w", providerID, err)
	}
	rating := RoundRating(avg)
	if err := a.Providers.SetRating(ctx, providerID, rating); err != nil {
		return 0, err
	}
	a.invalidate(ctx, providerID)

	a.Logger.Info("recomputed provider rating",
		zap.String("providerId", providerID),
		zap.Float64("rating", rating),
		zap.Int("reviews", count))
	return rating, nil
}

func (a *DefaultAggregator) invalidate(ctx context.Context, providerID string) {
	if a.Cache == nil {
		return
	}
	if err := a.Cache.InvalidateProfile(ctx, providerID); err != nil {
		a.Logger.Warn("failed to invalidate provider profile cache",
			zap.String("providerId", providerID), zap.Error(err))
	}
}

// RoundRating rounds an average rating to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
