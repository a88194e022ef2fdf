package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// rateLimitKey buckets requests per till. Several tills in one shop usually
// share an address, so the client IP is only used before authentication.
func rateLimitKey(c *gin.Context) string {
	if actor, ok := GetActorFromContext(c); ok {
		return "pos:" + strconv.FormatInt(actor.PointOfSaleID, 10) + ":" + actor.UserID
	}
	return "ip:" + c.ClientIP()
}

// RateLimit rejects requests over the limiter's rate with 429 and reports the
// window in X-RateLimit-* headers. Requests pass when the store fails.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKey(c)
		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("rate_key", key))

		window, err := l.Get(c.Request.Context(), key)
		if err != nil {
			logger.Error("Rate limit store unavailable, allowing request", slog.String("error", err.Error()))
			c.Next()
			return
		}

		reset := time.Unix(window.Reset, 0)
		c.Header("X-RateLimit-Limit", strconv.FormatInt(window.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(window.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(window.Reset, 10))

		if window.Reached {
			retryAfter := time.Until(reset).Round(time.Second)
			if retryAfter < time.Second {
				retryAfter = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			logger.Warn("Rate limit exceeded",
				slog.String("method", c.Request.Method),
				slog.String("route", c.FullPath()),
				slog.Int64("limit", window.Limit),
				slog.Time("reset", reset))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, retry after " + retryAfter.String()})
			return
		}

		c.Next()
	}
}
