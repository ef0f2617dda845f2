package handlers

import (
	"net/http"

	"fixly/middleware"
	"fixly/models"
	"fixly/services/provider"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// GetProviderHandler returns a provider's public profile.
func (hb *HandlerBundle) GetProviderHandler(c *gin.Context) {
	profile, err := hb.ProviderSvc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProviderProfileHandler patches the caller's bio, experience
// or hourly rate.
func (hb *HandlerBundle) UpdateProviderProfileHandler(c *gin.Context) {
	var update provider.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	profile, err := hb.ProviderSvc.UpdateProfile(c.Request.Context(), middleware.CallerID(c), update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateAvailabilityHandler replaces the caller's weekly availability.
func (hb *HandlerBundle) UpdateAvailabilityHandler(c *gin.Context) {
	var input struct {
		Availability map[string]models.DayAvailability `json:"availability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	profile, err := hb.ProviderSvc.UpdateAvailability(c.Request.Context(), middleware.CallerID(c), input.Availability)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateServicesHandler replaces the caller's offered-services list.
func (hb *HandlerBundle) UpdateServicesHandler(c *gin.Context) {
	var input struct {
		Services []models.ServiceOffering `json:"services" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	profile, err := hb.ProviderSvc.UpdateServices(c.Request.Context(), middleware.CallerID(c), input.Services)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ProviderDashboardHandler returns the caller's dashboard summary.
func (hb *HandlerBundle) ProviderDashboardHandler(c *gin.Context) {
	dashboard, err := hb.ProviderSvc.Dashboard(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
