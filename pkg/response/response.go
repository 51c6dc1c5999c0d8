package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorResponse is the error body the dashboard client expects: a bare
// message field, no envelope.
type ErrorResponse struct {
	Message string `json:"message"`
}

// OK sends the payload as-is with HTTP 200. Successful responses carry the
// raw record, matching the original dashboard API contract.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Handle processes the error and returns the appropriate response.
func Handle(c *gin.Context, data interface{}, err error) {
	if err == nil {
		OK(c, data)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "Resource not found")
		return
	}

	InternalError(c, err.Error())
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: message})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Message: message})
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: message})
}
