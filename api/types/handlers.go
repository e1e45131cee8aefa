package types

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler utility functions to reduce duplication across handlers

// ParseUintParam extracts and parses a URL parameter as uint
// Returns the parsed value and sends error response if parsing fails
func ParseUintParam(c *gin.Context, paramName string) (uint, bool) {
	paramStr := c.Param(paramName)
	value, err := strconv.ParseUint(paramStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status: StatusError,
			Error:  "Invalid " + paramName,
		})
		return 0, false
	}
	return uint(value), true
}

// ParseIntQuery extracts an integer query parameter, falling back to a
// default when absent or malformed
func ParseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Error: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Error: message})
}

// SendConflict sends a standardized conflict response
func SendConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Status: StatusError, Error: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Status: StatusError, Error: message})
}
