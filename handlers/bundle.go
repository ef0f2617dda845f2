package handlers

import (
	catalogRepo "fixly/database/repository/catalog"
	"fixly/services/booking"
	"fixly/services/provider"
	"fixly/services/review"
	"fixly/services/user"
)

// HandlerBundle groups the handler dependencies wired in main so the
// routes package can register everything from one place.
type HandlerBundle struct {
	BookingSvc  booking.BookingService
	ReviewSvc   review.ReviewService
	ProviderSvc provider.ProviderService
	UserSvc     user.UserService
	Catalog     catalogRepo.CatalogRepository
}
