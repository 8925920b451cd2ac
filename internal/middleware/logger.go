package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotelindigo/internal/apiclient"
)

const requestIDHeader = "X-Request-ID"

// RequestID keeps the caller's X-Request-ID or issues one, and echoes it
// back so the websocket client and the logs can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// ErrorLogger writes one request_error line per error attached to the
// context, classifying backend failures by what the hotel API answered.
// A panic becomes a 500 envelope.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				logLine(c, start, "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":       "INTERNAL_ERROR",
						"message":    "Internal Server Error",
						"request_id": c.GetString("request_id"),
					},
				})
				return
			}

			if len(c.Errors) == 0 && c.Writer.Status() >= http.StatusInternalServerError {
				logLine(c, start, "http_error", http.StatusText(c.Writer.Status()))
			}
			for _, e := range c.Errors {
				kind, extra := classify(e.Err)
				logLine(c, start, kind, e.Error(), extra...)
			}
		}()

		c.Next()
	}
}

func classify(err error) (string, []string) {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, apiclient.ErrSessionExpired):
		return "session_expired", nil
	case errors.Is(err, apiclient.ErrNetwork):
		return "upstream_unreachable", nil
	case errors.As(err, &apiErr):
		return "upstream_rejected", []string{"upstream_status", fmt.Sprint(apiErr.StatusCode)}
	default:
		return "internal", nil
	}
}

// logLine prints key=value pairs; extra holds further key, value pairs.
func logLine(c *gin.Context, start time.Time, kind, msg string, extra ...string) {
	var b strings.Builder
	fmt.Fprintf(&b, "request_error kind=%s status=%d method=%s path=%s client_ip=%s user_id=%d request_id=%s latency=%s",
		kind,
		c.Writer.Status(),
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		c.GetInt64("user_id"),
		c.GetString("request_id"),
		time.Since(start),
	)
	for i := 0; i+1 < len(extra); i += 2 {
		fmt.Fprintf(&b, " %s=%q", extra[i], extra[i+1])
	}
	fmt.Fprintf(&b, " error=%q", msg)
	log.Print(b.String())
}
