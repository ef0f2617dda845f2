package handlers

import (
	"net/http"

	"fixly/models"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// ListCategoriesHandler returns the service category reference data.
func (hb *HandlerBundle) ListCategoriesHandler(c *gin.Context) {
	categories, err := hb.Catalog.GetAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if categories == nil {
		categories = []models.ServiceCategory{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
