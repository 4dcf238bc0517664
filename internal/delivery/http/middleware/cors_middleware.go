package middleware

import (
	"time"

	"go-formrelay-backend/pkg/apperror"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const msgOriginNotAllowed = "Origin not allowed"

// CORSMiddleware lets the site's own pages post the forms from the browser.
// Only origins listed in ALLOWED_ORIGINS receive CORS headers; "*" allows any.
// Requests from other origins are refused with the usual JSON error body, so
// ErrorHandler must be registered before it.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Request-ID"}
	config.ExposeHeaders = []string{"Retry-After", "X-Request-ID"}
	// Session cookie drives the cooldown.
	config.AllowCredentials = true
	config.MaxAge = 24 * time.Hour

	wildcard := false
	allowed := make(map[string]bool, len(allowedOrigins))
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
			continue
		}
		if o != "" {
			allowed[o] = true
			origins = append(origins, o)
		}
	}

	if wildcard {
		// Credentials cannot be combined with "*", so echo the origin back.
		config.AllowOriginFunc = func(string) bool { return true }
	} else {
		config.AllowOrigins = origins
		if len(origins) == 0 {
			config.AllowOriginFunc = func(string) bool { return false }
		}
	}

	applyCORS := cors.New(config)
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && !wildcard && !allowed[origin] && !sameOrigin(c, origin) {
			c.Error(apperror.Forbidden(msgOriginNotAllowed))
			c.Abort()
			return
		}
		applyCORS(c)
	}
}

// sameOrigin matches the check cors.New uses to let non-CORS requests through.
func sameOrigin(c *gin.Context, origin string) bool {
	host := c.Request.Host
	return origin == "http://"+host || origin == "https://"+host
}
