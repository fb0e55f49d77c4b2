package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// ContextRequestIDKey stores the request ID inside Gin context.
const ContextRequestIDKey = "request_id"

// RequestID reuses an incoming X-Request-ID or mints a new one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		ctx.Set(ContextRequestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}
