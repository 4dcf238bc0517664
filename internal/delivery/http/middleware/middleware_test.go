package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var sessionCfg = SessionConfig{CookieName: "sid", MaxAge: 60}

func sessionEngine(seen *string) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(sessionCfg))
	r.POST("/", func(c *gin.Context) {
		*seen = c.GetString(domain.KeySessionID)
		c.Status(http.StatusOK)
	})
	return r
}

func TestSessionMiddlewareIssuesCookie(t *testing.T) {
	var seen string
	r := sessionEngine(&seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "sid", cookies[0].Name)
		assert.Equal(t, seen, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	}
	assert.Len(t, seen, 64)
}

func TestSessionMiddlewareKeepsValidCookie(t *testing.T) {
	var seen string
	r := sessionEngine(&seen)
	existing := strings.Repeat("ab", 32)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: existing})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, existing, seen)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddlewareReplacesForgedCookie(t *testing.T) {
	var seen string
	r := sessionEngine(&seen)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "../../etc/passwd"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "../../etc/passwd", seen)
	assert.Len(t, seen, 64)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(domain.KeyRequestID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	const incoming = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
}

func TestErrorHandlerAppliesHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware())
	r.Use(ErrorHandler())
	r.POST("/", func(c *gin.Context) {
		c.Error(apperror.BadRequest("Please wait 5 seconds before submitting again.").WithRetryAfter(5))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "5", w.Header().Get("Retry-After"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.JSONEq(t, `{"success":false,"message":"Please wait 5 seconds before submitting again."}`, w.Body.String())
}

func TestThrottleDisabled(t *testing.T) {
	r := gin.New()
	r.Use(ThrottleMiddleware(ThrottleConfig{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
