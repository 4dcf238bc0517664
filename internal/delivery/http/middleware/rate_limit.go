package middleware

import (
	"math"
	"net/http"
	"strconv"

	"go-formrelay-backend/internal/delivery/http/response"
	"go-formrelay-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ThrottleConfig defines the process-wide request budget of the form routes.
type ThrottleConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// ThrottleMiddleware rejects requests beyond the configured rate with 429.
// It protects the mail transport from floods; the per-client cooldown is
// enforced by the form pipelines themselves. A non-positive RPS disables it.
func ThrottleMiddleware(config ThrottleConfig) gin.HandlerFunc {
	if config.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	burst := config.Burst
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(config.RPS), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			retryAfter := int(math.Ceil(1 / config.RPS))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Request throttled",
				"path", c.FullPath(),
				"ip", c.ClientIP(),
				"request_id", c.GetString("RequestID"),
			)
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
