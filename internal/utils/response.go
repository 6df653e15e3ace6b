// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelist/hotelist-backend/internal/apperrors"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", errors)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// AppErrorResponse maps a typed service error onto the HTTP contract. The
// three mutation failure kinds (NotFound, Forbidden, InvalidTransition) stay
// distinguishable by both status code and error code.
func AppErrorResponse(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	switch kind {
	case apperrors.KindValidationFailed:
		ErrorResponse(c, http.StatusBadRequest, kind.String(), err.Error(), nil)
	case apperrors.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, kind.String(), err.Error(), nil)
	case apperrors.KindForbidden:
		ErrorResponse(c, http.StatusForbidden, kind.String(), err.Error(), nil)
	case apperrors.KindInvalidTransition:
		ErrorResponse(c, http.StatusBadRequest, kind.String(), err.Error(), nil)
	case apperrors.KindConflict:
		ErrorResponse(c, http.StatusConflict, kind.String(), err.Error(), nil)
	default:
		ErrorResponse(c, http.StatusInternalServerError, kind.String(), "Internal server error", nil)
	}
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}

func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if role, exists := c.Get("role"); exists {
		if roleStr, ok := role.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}
