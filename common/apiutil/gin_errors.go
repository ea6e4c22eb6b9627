package apiutil

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned by the users API
//
// Example:
//
//	{
//	  "error": "User not found"
//	}
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteErrorResponse writes a consistent error response to the client
func WriteErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}
