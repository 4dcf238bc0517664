package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"go-formrelay-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// SessionIDLength is the length of a session ID in bytes (32 bytes = 64 hex chars)
const SessionIDLength = 32

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string
	MaxAge     int // seconds
	Secure     bool
}

// generateSessionID creates a cryptographically secure random session ID
func generateSessionID() (string, error) {
	bytes := make([]byte, SessionIDLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func validSessionID(id string) bool {
	if len(id) != SessionIDLength*2 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// SessionMiddleware gives every client a session cookie and exposes its ID
// under domain.KeySessionID. Cooldowns are tracked per session, so a client
// that drops the cookie starts over.
func SessionMiddleware(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.CookieName)
		if err != nil || !validSessionID(sid) {
			sid, err = generateSessionID()
			if err != nil {
				c.Error(err)
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sid, cfg.MaxAge, "/", "", cfg.Secure, true)
		}

		c.Set(domain.KeySessionID, sid)
		c.Next()
	}
}
