package v1

import (
	"net/http"

	"go-formrelay-backend/config"
	"go-formrelay-backend/internal/delivery/http/middleware"
	"go-formrelay-backend/internal/delivery/http/response"
	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/internal/usecase"
	"go-formrelay-backend/pkg/apperror"
	"go-formrelay-backend/pkg/logger"
	"go-formrelay-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC      domain.ContactUsecase
	NewsletterUC   domain.NewsletterUsecase
	HealthUC       usecase.HealthUsecase
	SecurityLogger *security.SecurityLogger
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	// Wrong methods on the form routes get the 403 from RejectDirectAccess
	r.HandleMethodNotAllowed = true
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		logger.Log.Warn("Invalid TRUSTED_PROXIES, using the socket address only", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	// CORS renders its rejections through ErrorHandler, so it comes after it
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins))

	r.NoMethod(middleware.RejectDirectAccess(deps.SecurityLogger, "/v1/contact", "/v1/newsletter"))
	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Not found"))
	})

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		var status map[string]string
		if deps.HealthUC != nil {
			status = deps.HealthUC.Check(c.Request.Context())
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public form routes
	forms := v1.Group("")
	forms.Use(middleware.ThrottleMiddleware(middleware.ThrottleConfig{
		RPS:   deps.Config.Throttle.RPS,
		Burst: deps.Config.Throttle.Burst,
	}))
	forms.Use(middleware.SessionMiddleware(middleware.SessionConfig{
		CookieName: deps.Config.Session.CookieName,
		MaxAge:     deps.Config.Session.MaxAgeSecs,
		Secure:     deps.Config.Session.Secure,
	}))
	{
		NewContactHandler(forms, deps.ContactUC)
		NewNewsletterHandler(forms, deps.NewsletterUC)
	}

	return r
}
