package provider

import (
	"context"

	bookingRepo "fixly/database/repository/booking"
	providerRepo "fixly/database/repository/provider"
	"fixly/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ProfileUpdate carries a partial edit of the provider's own fields.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	Bio        *string  `json:"bio"`
	Experience *string  `json:"experience"`
	HourlyRate *float64 `json:"hourlyRate"`
}

// ProviderService exposes the provider profile aggregate: the
// provider's own edits (bio, rate, services, availability) and the
// derived-stats reads the dashboard needs. Derived fields are written
// elsewhere, by the stats aggregator.
type ProviderService interface {
	// GetProfile fetches a profile, served from cache when warm.
	GetProfile(ctx context.Context, userID string) (*models.ProviderProfile, error)
	// UpdateProfile patches bio/experience/hourlyRate.
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.ProviderProfile, error)
	// UpdateAvailability replaces the weekly availability map.
	UpdateAvailability(ctx context.Context, userID string, availability map[string]models.DayAvailability) (*models.ProviderProfile, error)
	// UpdateServices replaces the offered-services list.
	UpdateServices(ctx context.Context, userID string, services []models.ServiceOffering) (*models.ProviderProfile, error)
	// Dashboard returns the profile plus upcoming and recent bookings.
	Dashboard(ctx context.Context, userID string) (*models.ProviderDashboard, error)
	// InvalidateProfile drops the cached profile entry.
	InvalidateProfile(ctx context.Context, userID string) error
}

// DefaultProviderService implements ProviderService.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	Bookings bookingRepo.BookingRepository
	Cache    *redis.Client // optional; nil disables caching
	Logger   *zap.Logger
}
