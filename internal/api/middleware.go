package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pharmacy-options-service/internal/platform/obs"
)

// RequestID tags every request with a v4 uuid for log correlation and
// snapshot keying, echoed back in the X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		ctx := obs.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", id)

		c.Next()
	}
}

// RequestLogger logs end-to-end request duration and response size for
// basic observability.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Milliseconds()
		log.Printf(
			"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			obs.RequestID(c.Request.Context()),
			c.Request.Method, c.Request.URL.RequestURI(),
			c.Writer.Status(), c.Writer.Size(), duration,
		)
	}
}
