package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"unirise-backend/internal/shared/server/respond"
	"unirise-backend/internal/shared/telemetry"
)

const panicMessage = "Internal Server Error: unexpected server error"

// Recovery turns a handler panic into a 500 {"error"} body and marks the
// request span as failed.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			err := fmt.Errorf("panic: %v", rec)
			span := trace.SpanFromContext(c.Request.Context())
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")

			telemetry.Error("panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err,
				"stack":      string(debug.Stack()),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
			})
			respond.Error(c, http.StatusInternalServerError, "internal", panicMessage)
		}()
		c.Next()
	}
}
