package response

import (
	"errors"
	"net/http"
	"time"

	"wallet-service/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error      string `json:"error"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Code       string `json:"code"`
	DebugInfo  string `json:"debug_info,omitempty"`
	RequestID  string `json:"request_id"`
	Timestamp  string `json:"timestamp"`
}

// OK sends a 200 response with data as the body.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.InternalError(err)
	}

	status := appErr.HTTPStatus()
	c.JSON(status, ErrorResponse{
		Error:      appErr.Label(),
		Status:     "error",
		StatusCode: status,
		Title:      appErr.Title,
		Message:    appErr.Message,
		Details:    appErr.Details,
		Code:       appErr.Code,
		DebugInfo:  appErr.DebugInfo,
		RequestID:  getRequestID(c),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
