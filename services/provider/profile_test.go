package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fixly/apperr"
	bookingRepo "fixly/database/repository/booking"
	"fixly/models"
)

// --- Mocks ---

type mockProviderRepo struct {
	mock.Mock
}

func (m *mockProviderRepo) Create(ctx context.Context, profile *models.ProviderProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProviderProfile), args.Error(1)
}

func (m *mockProviderRepo) UpdateFields(ctx context.Context, userID string, fields map[string]any) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

func (m *mockProviderRepo) IncrementStats(ctx context.Context, userID string, earnings float64) error {
	args := m.Called(ctx, userID, earnings)
	return args.Error(0)
}

func (m *mockProviderRepo) SetRating(ctx context.Context, userID string, rating float64) error {
	args := m.Called(ctx, userID, rating)
	return args.Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, completedDate *time.Time) (*models.Booking, error) {
	args := m.Called(ctx, id, from, to, completedDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpcomingByProvider(ctx context.Context, providerID string, limit int64) ([]models.Booking, error) {
	args := m.Called(ctx, providerID, limit)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingRepo) RecentCompletedByProvider(ctx context.Context, providerID string, limit int64) ([]models.Booking, error) {
	args := m.Called(ctx, providerID, limit)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByProviderAndStatus(ctx context.Context, providerID string, status models.BookingStatus) (int64, error) {
	args := m.Called(ctx, providerID, status)
	return args.Get(0).(int64), args.Error(1)
}

// --- Helpers ---

func newTestService() (*DefaultProviderService, *mockProviderRepo, *mockBookingRepo) {
	providers := new(mockProviderRepo)
	bookings := new(mockBookingRepo)
	svc := &DefaultProviderService{
		Repo:     providers,
		Bookings: bookings,
		Logger:   zap.NewNop(),
	}
	return svc, providers, bookings
}

func profile() *models.ProviderProfile {
	return &models.ProviderProfile{
		UserID:        "prov-2",
		Bio:           "Licensed plumber",
		HourlyRate:    45,
		TotalJobs:     3,
		TotalEarnings: 1500,
		Rating:        4.5,
	}
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// --- Tests ---

func TestGetProfile_FallsBackToStoreWithoutCache(t *testing.T) {
	svc, providers, _ := newTestService()
	ctx := context.Background()

	providers.On("GetByUserID", ctx, "prov-2").Return(profile(), nil)

	got, err := svc.GetProfile(ctx, "prov-2")
	require.NoError(t, err)
	assert.Equal(t, "prov-2", got.UserID)
	assert.Equal(t, 4.5, got.Rating)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, providers, _ := newTestService()
	ctx := context.Background()

	providers.On("GetByUserID", ctx, "ghost").Return(nil, apperr.NotFound("provider profile not found"))

	_, err := svc.GetProfile(ctx, "ghost")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUpdateProfile_PatchesOnlySubmittedFields(t *testing.T) {
	svc, providers, _ := newTestService()
	ctx := context.Background()

	providers.On("UpdateFields", ctx, "prov-2", map[string]any{"bio": "New bio"}).Return(nil)
	providers.On("GetByUserID", ctx, "prov-2").Return(profile(), nil)

	_, err := svc.UpdateProfile(ctx, "prov-2", ProfileUpdate{Bio: strPtr("New bio")})
	require.NoError(t, err)
	providers.AssertCalled(t, "UpdateFields", ctx, "prov-2", map[string]any{"bio": "New bio"})
}

func TestUpdateProfile_RejectsNegativeRate(t *testing.T) {
	svc, providers, _ := newTestService()

	_, err := svc.UpdateProfile(context.Background(), "prov-2", ProfileUpdate{HourlyRate: f64Ptr(-10)})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	providers.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_RejectsEmptyUpdate(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateProfile(context.Background(), "prov-2", ProfileUpdate{})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestUpdateAvailability(t *testing.T) {
	svc, providers, _ := newTestService()
	ctx := context.Background()

	availability := map[string]models.DayAvailability{
		"monday": {Available: true, Start: "09:00", End: "17:00"},
		"sunday": {Available: false},
	}
	providers.On("UpdateFields", ctx, "prov-2", map[string]any{"availability": availability}).Return(nil)
	providers.On("GetByUserID", ctx, "prov-2").Return(profile(), nil)

	_, err := svc.UpdateAvailability(ctx, "prov-2", availability)
	require.NoError(t, err)
}

func TestUpdateAvailability_RejectsUnknownDay(t *testing.T) {
	svc, providers, _ := newTestService()

	_, err := svc.UpdateAvailability(context.Background(), "prov-2", map[string]models.DayAvailability{
		"funday": {Available: true, Start: "09:00", End: "17:00"},
	})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	providers.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAvailability_RequiresWindowWhenAvailable(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateAvailability(context.Background(), "prov-2", map[string]models.DayAvailability{
		"monday": {Available: true},
	})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestUpdateServices_AssignsIDs(t *testing.T) {
	svc, providers, _ := newTestService()
	ctx := context.Background()

	providers.On("UpdateFields", ctx, "prov-2", mock.MatchedBy(func(fields map[string]any) bool {
		services, ok := fields["services"].([]models.ServiceOffering)
		return ok && len(services) == 1 && services[0].ID != ""
	})).Return(nil)
	providers.On("GetByUserID", ctx, "prov-2").Return(profile(), nil)

	_, err := svc.UpdateServices(ctx, "prov-2", []models.ServiceOffering{
		{Name: "Pipe repair", Rate: 60},
	})
	require.NoError(t, err)
}

func TestUpdateServices_RejectsUnnamedService(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateServices(context.Background(), "prov-2", []models.ServiceOffering{
		{Rate: 60},
	})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestDashboard(t *testing.T) {
	svc, providers, bookings := newTestService()
	ctx := context.Background()

	upcoming := []models.Booking{{ID: "bk-1", Status: models.BookingAccepted}}
	recent := []models.Booking{{ID: "bk-2", Status: models.BookingCompleted}}

	providers.On("GetByUserID", ctx, "prov-2").Return(profile(), nil)
	bookings.On("UpcomingByProvider", ctx, "prov-2", int64(10)).Return(upcoming, nil)
	bookings.On("RecentCompletedByProvider", ctx, "prov-2", int64(10)).Return(recent, nil)
	bookings.On("CountByProviderAndStatus", ctx, "prov-2", models.BookingPending).Return(int64(3), nil)

	dash, err := svc.Dashboard(ctx, "prov-2")
	require.NoError(t, err)
	assert.Equal(t, "prov-2", dash.Profile.UserID)
	assert.Len(t, dash.Upcoming, 1)
	assert.Len(t, dash.Recent, 1)
	assert.Equal(t, int64(3), dash.PendingCount)
}

func TestInvalidateProfile_NoCacheIsNoop(t *testing.T) {
	svc, _, _ := newTestService()
	assert.NoError(t, svc.InvalidateProfile(context.Background(), "prov-2"))
}
