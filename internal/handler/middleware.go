package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID echoes an incoming X-Request-ID or mints a UUID when absent or
// unreasonably long.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the id assigned by RequestID, or "".
func RequestIDFrom(c *gin.Context) string { return c.GetString(requestIDKey) }

// RequestLogger writes one line per request. A request-scoped logger is put
// into the request context so services can log with the same request_id via
// zerolog.Ctx.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	base := logger.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		begin := time.Now()
		l := base.With().Str("request_id", RequestIDFrom(c)).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= 500 || len(c.Errors) > 0:
			level = zerolog.ErrorLevel
		case status >= 400:
			level = zerolog.WarnLevel
		}

		errs := make([]error, 0, len(c.Errors))
		for _, err := range c.Errors {
			errs = append(errs, err.Err)
		}

		l.WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Dur("elapsed", time.Since(begin)).
			Errs("errors", errs).
			Msg("request")
	}
}
