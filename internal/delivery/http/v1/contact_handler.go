package v1

import (
	"errors"
	"net/http"

	"contact-relay-backend/internal/delivery/http/response"
	"contact-relay-backend/internal/domain"
	"contact-relay-backend/pkg/apperror"
	"contact-relay-backend/pkg/mailer"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/send-email", handler.SendEmail)
}

// SendEmail godoc
// @Summary      Submit Contact Form
// @Description  Relay a contact form submission to the site owner by email. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /send-email [post]
func (h *ContactHandler) SendEmail(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation([]string{"Invalid request body"}))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		c.Error(mapContactError(err))
		return
	}

	response.Success(c, http.StatusOK, "Your message has been sent successfully!")
}

// mapContactError translates usecase failures into HTTP-coded errors:
// validation → 400 with the ordered message list, transport auth/connection
// failures → 503, refused envelope → 400, anything else → 500.
func mapContactError(err error) *apperror.AppError {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return apperror.Validation(vErr.Messages)
	}

	if errors.Is(err, domain.ErrMailNotConfigured) {
		return apperror.ServiceUnavailable("Contact service temporarily unavailable", err)
	}

	var mErr *mailer.MailError
	if errors.As(err, &mErr) {
		switch mErr.Kind {
		case mailer.KindAuth, mailer.KindConnection:
			return apperror.ServiceUnavailable("Contact service temporarily unavailable. Please try again later.", err)
		case mailer.KindEnvelope:
			return apperror.New(http.StatusBadRequest, "Message could not be delivered to the recipient.", err)
		}
	}

	return apperror.New(http.StatusInternalServerError, "Failed to send message. Please try again later.", err)
}
