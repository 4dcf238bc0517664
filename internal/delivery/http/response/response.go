package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	write(c, code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	write(c, code, Response{
		Success: false,
		Message: message,
	})
}

func write(c *gin.Context, code int, body Response) {
	// gin keeps a Content-Type that is already set, so clients see exactly
	// application/json without a charset parameter.
	c.Header("Content-Type", "application/json")
	c.JSON(code, body)
}
