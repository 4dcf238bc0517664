package v1

import (
	"net/http"

	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const msgBadRequest = "Invalid request."

// submissionMeta collects what the pipelines need to know about the request.
func submissionMeta(c *gin.Context) domain.SubmissionMeta {
	return domain.SubmissionMeta{
		ClientIP:  c.ClientIP(),
		SessionID: c.GetString(domain.KeySessionID),
		UserAgent: c.Request.UserAgent(),
		BaseURL:   requestBaseURL(c),
		RequestID: c.GetString(domain.KeyRequestID),
	}
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// submissionError maps a pipeline error onto the HTTP error pushed with c.Error.
func submissionError(err error) error {
	subErr, ok := domain.AsSubmissionError(err)
	if !ok {
		return err
	}

	switch subErr.Kind {
	case domain.KindMethodNotAllowed:
		return apperror.New(http.StatusForbidden, subErr.Message, subErr)
	case domain.KindRateLimited:
		return apperror.New(http.StatusBadRequest, subErr.Message, subErr).WithRetryAfter(subErr.RetryAfter)
	default:
		return apperror.New(http.StatusBadRequest, subErr.Message, subErr)
	}
}
