package middleware

import (
	"go-formrelay-backend/pkg/apperror"
	"go-formrelay-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const msgDirectAccess = "Direct access not permitted"

// RejectDirectAccess answers the form endpoints in paths when they are
// reached with anything but POST. Other routes get a plain 405. Register it
// with engine.NoMethod and HandleMethodNotAllowed enabled.
func RejectDirectAccess(secLog *security.SecurityLogger, paths ...string) gin.HandlerFunc {
	forms := make(map[string]bool, len(paths))
	for _, p := range paths {
		forms[p] = true
	}

	return func(c *gin.Context) {
		if !forms[c.Request.URL.Path] {
			c.Error(apperror.MethodNotAllowed("Method not allowed"))
			c.Abort()
			return
		}

		if secLog != nil {
			secLog.Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventDirectAccess,
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: c.GetString("RequestID"),
				Details: map[string]interface{}{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				},
			})
		}
		c.Error(apperror.Forbidden(msgDirectAccess))
		c.Abort()
	}
}
