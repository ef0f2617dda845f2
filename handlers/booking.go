package handlers

import (
	"net/http"

	"fixly/middleware"
	"fixly/models"
	"fixly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBookingHandler creates a booking for the authenticated customer.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.CustomerID = middleware.CallerID(c)

	booking, err := hb.BookingSvc.CreateBooking(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListBookingsHandler lists the caller's bookings for their role side,
// optionally filtered by ?status=.
func (hb *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))

	bookings, err := hb.BookingSvc.ListBookings(
		c.Request.Context(), middleware.CallerID(c), middleware.CallerRole(c), status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBookingHandler returns one of the caller's bookings.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	booking, err := hb.BookingSvc.GetBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// AcceptBookingHandler moves a pending booking to accepted.
func (hb *HandlerBundle) AcceptBookingHandler(c *gin.Context) {
	booking, err := hb.BookingSvc.AcceptBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler cancels a pending or accepted booking.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	booking, err := hb.BookingSvc.CancelBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CompleteBookingHandler completes an accepted booking and credits
// the provider's stats.
func (hb *HandlerBundle) CompleteBookingHandler(c *gin.Context) {
	booking, err := hb.BookingSvc.CompleteBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("booking completed via API", zap.String("bookingId", booking.ID))
	c.JSON(http.StatusOK, booking)
}
