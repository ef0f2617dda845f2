package providerRepo

import (
	"context"

	"fixly/models"
)

// ProviderRepository defines methods for provider profile data access.
//
// The derived fields (totalJobs, totalEarnings, rating) are written
// only through IncrementStats and SetRating; profile edits go through
// field-scoped updates so the two writers never collide.
type ProviderRepository interface {
	// Create inserts a new provider profile.
	Create(ctx context.Context, profile *models.ProviderProfile) error
	// GetByUserID retrieves a profile by the provider's user ID.
	GetByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error)
	// UpdateFields patches only the given top-level fields ($set).
	UpdateFields(ctx context.Context, userID string, fields map[string]any) error
	// IncrementStats atomically bumps totalJobs by one and
	// totalEarnings by the given amount ($inc).
	IncrementStats(ctx context.Context, userID string, earnings float64) error
	// SetRating writes the recomputed average rating.
	SetRating(ctx context.Context, userID string, rating float64) error
}
