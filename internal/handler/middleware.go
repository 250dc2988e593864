package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id in and out of the server
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id, stores a request-scoped
// logger in the request context and logs the outcome of the request
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		// Services only see the request id
		coreLogger := logger.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(coreLogger.WithContext(c.Request.Context()))

		httpLogger := coreLogger.With().
			Str("http_method", c.Request.Method).
			Str("http_path", c.Request.URL.Path).
			Str("remote_addr", c.ClientIP()).
			Logger()

		startTime := time.Now()
		httpLogger.Debug().Msg("request started")

		c.Next()

		status := c.Writer.Status()
		event := httpLogger.Info()
		if status >= 500 {
			event = httpLogger.Error()
		} else if status >= 400 {
			event = httpLogger.Warn()
		}
		event.
			Int("status_code", status).
			Int("bytes_written", c.Writer.Size()).
			Int64("duration_ms", time.Since(startTime).Milliseconds()).
			Msg("request finished")
	}
}
