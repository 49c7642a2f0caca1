package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	Error     string   `json:"error,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		RequestID: requestID(c),
	})
}

// Error sends a single-message error response
func Error(c *gin.Context, code int, errMsg string) {
	c.JSON(code, Response{
		Success:   false,
		Error:     errMsg,
		RequestID: requestID(c),
	})
}

// ValidationFailed sends the ordered per-field validation messages
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, Response{
		Success:   false,
		Errors:    errs,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
