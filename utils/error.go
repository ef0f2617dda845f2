package utils

import (
	"net/http"

	"fixly/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// statusForCode maps a domain error code to its HTTP status.
func statusForCode(code apperr.Code) int {
	switch code {
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeAccessDenied:
		return http.StatusForbidden
	case apperr.CodeConflict:
		return http.StatusConflict
	case apperr.CodeValidation, apperr.CodeInvalidReference,
		apperr.CodeInvalidTransition, apperr.CodeInvalidState:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RespondError writes the JSON error envelope for err. Domain errors
// map to their HTTP status; anything else is a 500 with the detail
// kept out of the response body.
func RespondError(c *gin.Context, err error) {
	if code, ok := apperr.CodeOf(err); ok {
		c.JSON(statusForCode(code), ErrorResponse{
			Message: err.Error(),
			Code:    string(code),
		})
		return
	}
	GetLogger().Error("internal error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal Server Error",
	})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
