package v1

import (
	"net/http"

	"go-formrelay-backend/internal/delivery/http/response"
	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public gin.IRoutes, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates a contact inquiry and forwards it by email. Only POST is accepted.
// @Tags         contact
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name     formData  string  true   "Sender name (2-100 characters)"
// @Param        email    formData  string  true   "Sender email"
// @Param        subject  formData  string  true   "Subject (3-200 characters)"
// @Param        message  formData  string  true   "Message (at least 10 characters)"
// @Param        phone    formData  string  false  "Phone number"
// @Param        company  formData  string  false  "Company"
// @Param        website  formData  string  false  "Must stay empty"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, msgBadRequest, err))
		return
	}
	req.Meta = submissionMeta(c)

	res, err := h.contactUC.Submit(c.Request.Context(), &req)
	if err != nil {
		c.Error(submissionError(err))
		return
	}

	response.Success(c, http.StatusOK, res.Message, nil)
}
