package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the per-request id.
const RequestIDKey = "request_id"

// ErrorBody is the shape of every failed response.
type ErrorBody struct {
	Error     string `json:"error"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id"`
}

// Error aborts the chain and writes the error shape.
func Error(ctx *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{
		Error:     message,
		Details:   details,
		RequestID: ctx.GetString(RequestIDKey),
	})
}

// JSON writes a success body. A zero status means 200.
func JSON(ctx *gin.Context, status int, body gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, body)
}

// Message writes {"message": msg}.
func Message(ctx *gin.Context, status int, msg string) {
	JSON(ctx, status, gin.H{"message": msg})
}
