package handlers

import (
	"net/http"

	"fixly/middleware"
	"fixly/models"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// CreateReviewHandler creates a review for a completed booking.
func (hb *HandlerBundle) CreateReviewHandler(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.CustomerID = middleware.CallerID(c)

	review, err := hb.ReviewSvc.CreateReview(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ReviewableHandler reports whether a booking can still be reviewed.
func (hb *HandlerBundle) ReviewableHandler(c *gin.Context) {
	reviewable, err := hb.ReviewSvc.IsReviewable(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviewable": reviewable})
}

// ReplyToReviewHandler stores the provider's reply on a review.
func (hb *HandlerBundle) ReplyToReviewHandler(c *gin.Context) {
	var input struct {
		Reply string `json:"reply" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	review, err := hb.ReviewSvc.ReplyToReview(c.Request.Context(), c.Param("id"), middleware.CallerID(c), input.Reply)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// ProviderReviewsHandler lists a provider's reviews, newest first.
func (hb *HandlerBundle) ProviderReviewsHandler(c *gin.Context) {
	reviews, err := hb.ReviewSvc.ListProviderReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
