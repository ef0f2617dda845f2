package handlers

import (
	"net/http"
	"strings"

	"fixly/models"
	"fixly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterUserHandler creates an account and returns a session token.
func (hb *HandlerBundle) RegisterUserHandler(c *gin.Context) {
	var input models.UserRegistration
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	user, token, err := hb.UserSvc.Register(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("user registered via API", zap.String("userId", user.ID))
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// LoginHandler verifies credentials and returns a session token.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	user, token, err := hb.UserSvc.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// LogoutHandler revokes the caller's session token.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := hb.UserSvc.Revoke(c.Request.Context(), token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
