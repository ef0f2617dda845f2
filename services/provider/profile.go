package provider

import (
	"context"
	"encoding/json"
	"time"

	"fixly/apperr"
	"fixly/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const profileCacheTTL = 5 * time.Minute

func profileCacheKey(userID string) string {
	return "provider:profile:" + userID
}

// GetProfile serves the profile from the cache when warm, falling
// back to the store. Cache failures degrade to a plain store read.
func (s *DefaultProviderService) GetProfile(ctx context.Context, userID string) (*models.ProviderProfile, error) {
	if s.Cache != nil {
		data, err := s.Cache.Get(ctx, profileCacheKey(userID)).Result()
		if err == nil {
			var profile models.ProviderProfile
			if err := json.Unmarshal([]byte(data), &profile); err == nil {
				return &profile, nil
			}
		} else if err != redis.Nil {
			s.Logger.Warn("profile cache read failed", zap.String("userId", userID), zap.Error(err))
		}
	}

	profile, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cacheProfile(ctx, profile)
	return profile, nil
}

func (s *DefaultProviderService) cacheProfile(ctx context.Context, profile *models.ProviderProfile) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, profileCacheKey(profile.UserID), data, profileCacheTTL).Err(); err != nil {
		s.Logger.Warn("profile cache write failed", zap.String("userId", profile.UserID), zap.Error(err))
	}
}

// InvalidateProfile drops the cached entry. The stats aggregator
// calls this after every derived-stats write.
func (s *DefaultProviderService) InvalidateProfile(ctx context.Context, userID string) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Del(ctx, profileCacheKey(userID)).Err()
}

// UpdateProfile patches only the submitted fields. The derived stats
// paths are never part of the $set, so an edit here cannot race the
// aggregator's counter writes.
func (s *DefaultProviderService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.ProviderProfile, error) {
	fields := map[string]any{}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.Experience != nil {
		fields["experience"] = *update.Experience
	}
	if update.HourlyRate != nil {
		if *update.HourlyRate < 0 {
			return nil, apperr.Validation("hourlyRate must not be negative")
		}
		fields["hourlyRate"] = *update.HourlyRate
	}
	if len(fields) == 0 {
		return nil, apperr.Validation("no fields to update")
	}

	if err := s.Repo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}
	if err := s.InvalidateProfile(ctx, userID); err != nil {
		s.Logger.Warn("profile cache invalidation failed", zap.String("userId", userID), zap.Error(err))
	}
	return s.Repo.GetByUserID(ctx, userID)
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// UpdateAvailability replaces the weekly availability map.
func (s *DefaultProviderService) UpdateAvailability(ctx context.Context, userID string, availability map[string]models.DayAvailability) (*models.ProviderProfile, error) {
	if len(availability) == 0 {
		return nil, apperr.Validation("availability must not be empty")
	}
	for day, window := range availability {
		if !weekdays[day] {
			return nil, apperr.Validation("unknown weekday %q", day)
		}
		if window.Available && (window.Start == "" || window.End == "") {
			return nil, apperr.Validation("available day %q needs start and end times", day)
		}
	}

	if err := s.Repo.UpdateFields(ctx, userID, map[string]any{"availability": availability}); err != nil {
		return nil, err
	}
	if err := s.InvalidateProfile(ctx, userID); err != nil {
		s.Logger.Warn("profile cache invalidation failed", zap.String("userId", userID), zap.Error(err))
	}
	return s.Repo.GetByUserID(ctx, userID)
}

// UpdateServices replaces the offered-services list, assigning IDs to
// new entries.
func (s *DefaultProviderService) UpdateServices(ctx context.Context, userID string, services []models.ServiceOffering) (*models.ProviderProfile, error) {
	for i := range services {
		if services[i].Name == "" {
			return nil, apperr.Validation("service name is required")
		}
		if services[i].Rate < 0 {
			return nil, apperr.Validation("service rate must not be negative")
		}
		if services[i].ID == "" {
			services[i].ID = uuid.New().String()
		}
	}

	if err := s.Repo.UpdateFields(ctx, userID, map[string]any{"services": services}); err != nil {
		return nil, err
	}
	if err := s.InvalidateProfile(ctx, userID); err != nil {
		s.Logger.Warn("profile cache invalidation failed", zap.String("userId", userID), zap.Error(err))
	}
	return s.Repo.GetByUserID(ctx, userID)
}

// Dashboard assembles the provider home screen: profile with current
// stats, the next accepted jobs in schedule order, the most recently
// completed ones and the count of requests still awaiting acceptance.
func (s *DefaultProviderService) Dashboard(ctx context.Context, userID string) (*models.ProviderDashboard, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.Bookings.UpcomingByProvider(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	recent, err := s.Bookings.RecentCompletedByProvider(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	pending, err := s.Bookings.CountByProviderAndStatus(ctx, userID, models.BookingPending)
	if err != nil {
		return nil, err
	}
	return &models.ProviderDashboard{
		Profile:      profile,
		Upcoming:     upcoming,
		Recent:       recent,
		PendingCount: pending,
	}, nil
}
