package v1

import (
	"net/http"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/domain"
	"portfolio-api/pkg/apperror"
	"portfolio-api/pkg/security"

	"github.com/gin-gonic/gin"
)

const maxContactBodyBytes = 64 << 10

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers POST /contact. Errors render as {ok:false,error}.
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase, secLog *security.SecurityLogger, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	group := api.Group("/contact",
		middleware.ErrorHandler(response.Fail),
		middleware.Recovery(response.Fail, secLog),
	)
	group.POST("", limiter, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Verifies the Turnstile token and forwards the message to the site owner by email.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.ContactResponse
// @Failure      400      {object}  response.ContactResponse
// @Failure      429      {object}  response.ContactResponse
// @Failure      500      {object}  response.ContactResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validation("Invalid input", err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req, requestMeta(c)); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK)
}
