package v1

import (
	"net/http"

	"go-formrelay-backend/internal/delivery/http/response"
	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	newsletterUC domain.NewsletterUsecase
}

func NewNewsletterHandler(public gin.IRoutes, newsletterUC domain.NewsletterUsecase) {
	handler := &NewsletterHandler{newsletterUC: newsletterUC}

	public.POST("/newsletter", handler.Subscribe)
}

// Subscribe godoc
// @Summary      Subscribe to Newsletter
// @Description  Validates an email address, sends the welcome message and notifies the newsletter inbox.
// @Tags         newsletter
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email    formData  string  true   "Subscriber email"
// @Param        website  formData  string  false  "Must stay empty"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /newsletter [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req domain.NewsletterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, msgBadRequest, err))
		return
	}
	req.Meta = submissionMeta(c)

	res, err := h.newsletterUC.Subscribe(c.Request.Context(), &req)
	if err != nil {
		c.Error(submissionError(err))
		return
	}

	response.Success(c, http.StatusOK, res.Message, nil)
}
