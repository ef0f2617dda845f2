package booking

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

// --- Mock repositories ---

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) GetByID(ctx context.Context, id string) (*models.ServiceCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceCategory), args.Error(1)
}

func (m *mockCatalogRepo) GetAll(ctx context.Context) ([]models.ServiceCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ServiceCategory), args.Error(1)
}

func (m *mockCatalogRepo) Seed(ctx context.Context, categories []models.ServiceCategory) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

type mockAggregator struct {
	mock.Mock
}

func (m *mockAggregator) OnBookingCompleted(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockAggregator) OnReviewCreated(ctx context.Context, providerID string) (float64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(float64), args.Error(1)
}

// --- Test helpers ---

type testDeps struct {
	bookings *mockBookingRepo
	users    *mockUserRepo
	catalog  *mockCatalogRepo
	stats    *mockAggregator
}

func newTestService() (*DefaultBookingService, *testDeps) {
	deps := &testDeps{
		bookings: new(mockBookingRepo),
		users:    new(mockUserRepo),
		catalog:  new(mockCatalogRepo),
		stats:    new(mockAggregator),
	}
	svc := NewDefaultBookingService(deps.bookings, deps.users, deps.catalog, deps.stats, zap.NewNop())
	return svc, deps
}

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		CustomerID:    "cust-1",
		ProviderID:    "prov-2",
		CategoryID:    "cat-plumber",
		Status:        models.BookingPending,
		ScheduledDate: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Price:         500,
		CreatedAt:     time.Now().UTC(),
	}
}

func validInput() models.BookingInput {
	return models.BookingInput{
		CustomerID:    "cust-1",
		ProviderID:    "prov-2",
		CategoryID:    "cat-plumber",
		ScheduledDate: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Price:         500,
	}
}

// --- CreateBooking ---

func TestCreateBooking_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.users.On("GetByID", ctx, "prov-2").
		Return(&models.User{ID: "prov-2", Role: models.RoleProvider}, nil)
	deps.catalog.On("GetByID", ctx, "cat-plumber").
		Return(&models.ServiceCategory{ID: "cat-plumber", Name: "Plumber", BasePrice: 500}, nil)
	deps.bookings.On("Create", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

	booking, err := svc.CreateBooking(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Nil(t, booking.CompletedDate)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "cust-1", booking.CustomerID)
	deps.bookings.AssertExpectations(t)
}

func TestCreateBooking_DanglingProvider(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.users.On("GetByID", ctx, "prov-2").
		Return(nil, apperr.NotFound("user prov-2 not found"))

	_, err := svc.CreateBooking(ctx, validInput())
	assert.True(t, apperr.Is(err, apperr.CodeInvalidReference))
}

func TestCreateBooking_ProviderIsNotAProvider(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.users.On("GetByID", ctx, "prov-2").
		Return(&models.User{ID: "prov-2", Role: models.RoleCustomer}, nil)

	_, err := svc.CreateBooking(ctx, validInput())
	assert.True(t, apperr.Is(err, apperr.CodeInvalidReference))
}

func TestCreateBooking_DanglingCategory(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.users.On("GetByID", ctx, "prov-2").
		Return(&models.User{ID: "prov-2", Role: models.RoleProvider}, nil)
	deps.catalog.On("GetByID", ctx, "cat-plumber").
		Return(nil, apperr.NotFound("service category cat-plumber not found"))

	_, err := svc.CreateBooking(ctx, validInput())
	assert.True(t, apperr.Is(err, apperr.CodeInvalidReference))
}

func TestCreateBooking_NegativePrice(t *testing.T) {
	svc, _ := newTestService()

	input := validInput()
	input.Price = -10
	_, err := svc.CreateBooking(context.Background(), input)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

// --- AcceptBooking ---

func TestAcceptBooking_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking()
	accepted := *booking
	accepted.Status = models.BookingAccepted

	deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)
	deps.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingPending, models.BookingAccepted, (*time.Time)(nil)).
		Return(&accepted, nil)

	got, err := svc.AcceptBooking(ctx, "bk-1", "prov-2")
	require.NoError(t, err)
	assert.Equal(t, models.BookingAccepted, got.Status)
}

func TestAcceptBooking_NotTheProvider(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

	_, err := svc.AcceptBooking(ctx, "bk-1", "someone-else")
	assert.True(t, apperr.Is(err, apperr.CodeAccessDenied))
}

func TestAcceptBooking_AlreadyAccepted(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking()
	booking.Status = models.BookingAccepted
	deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)

	_, err := svc.AcceptBooking(ctx, "bk-1", "prov-2")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
}

// A conditional-write miss means another instance moved the booking
// between the read and the write. The caller sees the transition error
// for the booking's current state, not a write conflict.
func TestAcceptBooking_LostRaceReportsCurrentState(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil).Once()
	deps.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingPending, models.BookingAccepted, (*time.Time)(nil)).
		Return(nil, apperr.Conflict("booking bk-1 is no longer pending"))

	cancelled := pendingBooking()
	cancelled.Status = models.BookingCancelled
	deps.bookings.On("GetByID", ctx, "bk-1").Return(cancelled, nil)

	_, err := svc.AcceptBooking(ctx, "bk-1", "prov-2")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
	assert.Contains(t, err.Error(), "cancelled")
}

// --- CompleteBooking ---

// Completing a booking that was never accepted fails.
func TestCompleteBooking_PendingFails(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

	_, err := svc.CompleteBooking(ctx, "bk-1", "prov-2")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
	assert.Contains(t, err.Error(), "pending")
	deps.stats.AssertNotCalled(t, "OnBookingCompleted", mock.Anything, mock.Anything)
}

// An accepted booking completes, stamps completedDate and
// credits the provider.
func TestCompleteBooking_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking()
	booking.Status = models.BookingAccepted

	deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)
	deps.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingAccepted, models.BookingCompleted, mock.AnythingOfType("*time.Time")).
		Run(func(args mock.Arguments) {
			completedAt := args.Get(4).(*time.Time)
			require.NotNil(t, completedAt)
		}).
		Return(func() *models.Booking {
			completed := *booking
			completed.Status = models.BookingCompleted
			now := time.Now().UTC()
			completed.CompletedDate = &now
			return &completed
		}(), nil)
	deps.stats.On("OnBookingCompleted", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

	got, err := svc.CompleteBooking(ctx, "bk-1", "prov-2")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, got.Status)
	assert.NotNil(t, got.CompletedDate)
	deps.stats.AssertCalled(t, "OnBookingCompleted", ctx, mock.MatchedBy(func(b *models.Booking) bool {
		return b.ProviderID == "prov-2" && b.Price == 500
	}))
}

func TestCompleteBooking_WrongProvider(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking()
	booking.Status = models.BookingAccepted
	deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)

	_, err := svc.CompleteBooking(ctx, "bk-1", "prov-99")
	assert.True(t, apperr.Is(err, apperr.CodeAccessDenied))
}

func TestCompleteBooking_TerminalStates(t *testing.T) {
	for _, status := range []models.BookingStatus{models.BookingCompleted, models.BookingCancelled} {
		t.Run(string(status), func(t *testing.T) {
			svc, deps := newTestService()
			ctx := context.Background()

			booking := pendingBooking()
			booking.Status = status
			deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)

			_, err := svc.CompleteBooking(ctx, "bk-1", "prov-2")
			assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
			assert.Contains(t, err.Error(), string(status))
		})
	}
}

// --- CancelBooking ---

func TestCancelBooking_ByCustomer(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking()
	cancelled := *booking
	cancelled.Status = models.BookingCancelled

	deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)
	deps.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingPending, models.BookingCancelled, (*time.Time)(nil)).
		Return(&cancelled, nil)

	got, err := svc.CancelBooking(ctx, "bk-1", "cust-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
}

func TestCancelBooking_ByProvider(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking()
	booking.Status = models.BookingAccepted
	cancelled := *booking
	cancelled.Status = models.BookingCancelled

	deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)
	deps.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingAccepted, models.BookingCancelled, (*time.Time)(nil)).
		Return(&cancelled, nil)

	_, err := svc.CancelBooking(ctx, "bk-1", "prov-2")
	require.NoError(t, err)
}

// A stranger to the booking cannot cancel it.
func TestCancelBooking_NotAParty(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

	_, err := svc.CancelBooking(ctx, "bk-1", "cust-other")
	assert.True(t, apperr.Is(err, apperr.CodeAccessDenied))
	deps.bookings.AssertNotCalled(t, "UpdateStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Re-cancelling fails loudly instead of silently succeeding.
func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking()
	booking.Status = models.BookingCancelled
	deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)

	_, err := svc.CancelBooking(ctx, "bk-1", "cust-1")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
	assert.Contains(t, err.Error(), "cancelled")
}

func TestCancelBooking_Completed(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking()
	booking.Status = models.BookingCompleted
	deps.bookings.On("GetByID", ctx, "bk-1").Return(booking, nil)

	_, err := svc.CancelBooking(ctx, "bk-1", "cust-1")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
}

// --- ListBookings ---

func TestListBookings_RoleFilters(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.bookings.On("List", ctx, bookingRepo.ListFilter{CustomerID: "cust-1"}).
		Return([]models.Booking{*pendingBooking()}, nil)
	deps.bookings.On("List", ctx, bookingRepo.ListFilter{ProviderID: "prov-2", Status: models.BookingAccepted}).
		Return([]models.Booking{}, nil)

	asCustomer, err := svc.ListBookings(ctx, "cust-1", models.RoleCustomer, "")
	require.NoError(t, err)
	assert.Len(t, asCustomer, 1)

	asProvider, err := svc.ListBookings(ctx, "prov-2", models.RoleProvider, models.BookingAccepted)
	require.NoError(t, err)
	assert.Empty(t, asProvider)
}

func TestListBookings_UnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ListBookings(context.Background(), "cust-1", models.RoleCustomer, "confirmed")
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestListBookings_UnknownRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ListBookings(context.Background(), "cust-1", "admin", "")
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

// --- GetBooking ---

func TestGetBooking_PartyOnly(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

	_, err := svc.GetBooking(ctx, "bk-1", "cust-1")
	require.NoError(t, err)

	_, err = svc.GetBooking(ctx, "bk-1", "stranger")
	assert.True(t, apperr.Is(err, apperr.CodeAccessDenied))
}
