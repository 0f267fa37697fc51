package middlewares

import (
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"visioneer-server/internal/infrastructure/metrics"
	"visioneer-server/internal/infrastructure/ratelimit"
	"visioneer-server/internal/interfaces/httpserver/responses"
	"visioneer-server/internal/utils/platformerrors"
)

// RateLimitMiddleware enforces a sliding-window limit per caller. The
// key is the authenticated principal when present, the client IP
// otherwise, so the generation budget follows the user across devices.
func RateLimitMiddleware(limiter ratelimit.Limiter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + rateKey(c)

		result := limiter.Allow(key, limit, window)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds() + 0.5)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			metrics.RecordRateLimited(scope)
			responses.HandleNewError(c, platformerrors.ErrorTypeRateLimited, "too many requests, retry later", "rate-limit-001")
			return
		}

		c.Next()
	}
}

func rateKey(c *gin.Context) string {
	if principal, ok := PrincipalFromContext(c); ok && principal.ID != "" {
		return "pid:" + principal.ID
	}
	if ip := clientIP(c.ClientIP()); ip != "" {
		return "ip:" + ip
	}
	return "anonymous"
}

// Normalize IPv6-mapped IPv4 etc.
func clientIP(raw string) string {
	if raw == "" {
		return ""
	}
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}
	return raw
}
