package middleware

import (
	"errors"
	"net/http"

	"go-formrelay-backend/internal/delivery/http/response"
	"go-formrelay-backend/pkg/apperror"
	"go-formrelay-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			for k, v := range appErr.Headers {
				c.Header(k, v)
			}
			if appErr.Err != nil {
				logger.Log.Debug("Request failed",
					"status", appErr.Code,
					"request_id", c.GetString("RequestID"),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error",
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}
