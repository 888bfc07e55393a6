package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/togramago/melodygen/internal/logger"
	"github.com/togramago/melodygen/internal/metrics"
)

const (
	requestIDHeader    = "X-Request-ID"
	requestIDKey       = "request_id"
	unmatchedRoute     = "unmatched"
	sentryFlushTimeout = 2 * time.Second
)

// RequestTracking assigns every request an id, logs its outcome and
// records it with recorder. A well-formed incoming X-Request-ID is kept.
func RequestTracking(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := requestIDFrom(c.GetHeader(requestIDHeader))
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := c.Writer.Status()
		logRequest(status, logger.Fields{
			"request_id":  requestID,
			"duration_ms": duration.Milliseconds(),
			"status_code": status,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"client_ip":   c.ClientIP(),
		})

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.RecordAPIRequest(c.Request.Context(), route, status, duration)
	}
}

func requestIDFrom(header string) string {
	if _, err := uuid.Parse(header); err == nil {
		return header
	}
	return uuid.NewString()
}

func logRequest(status int, fields logger.Fields) {
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("Request failed with server error", fmt.Errorf("status %d", status), fields)
	case status >= http.StatusBadRequest:
		logger.Warn("Request failed with client error", fields)
	default:
		logger.Info("Request completed", fields)
	}
}

// SentryMiddleware attaches a Sentry hub to every request.
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic: true,
		Timeout: sentryFlushTimeout,
	})
}

// RecoverWithSentry turns panics into a 500 response and reports them.
func RecoverWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			requestID := c.GetString(requestIDKey)

			if hub := sentrygin.GetHubFromContext(c); hub != nil {
				hub.WithScope(func(scope *sentry.Scope) {
					scope.SetRequest(c.Request)
					scope.SetTag("request_id", requestID)
					hub.RecoverWithContext(c.Request.Context(), recovered)
				})
			}

			logger.Error("Panic recovered", fmt.Errorf("panic: %v", recovered), logger.Fields{
				"request_id": requestID,
				"path":       c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}()
		c.Next()
	}
}
