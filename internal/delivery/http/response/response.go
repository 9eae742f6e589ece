package response

import (
	"net/http"

	"go-interview-booking/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Count     *int        `json:"count,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Data:      data,
		RequestID: requestID(c),
	})
}

// SuccessList sends a listing together with its item count
func SuccessList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Count:     &count,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Message sends a success response that only carries a message
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}
