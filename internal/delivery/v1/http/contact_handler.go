package http

import (
	"net/http"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
)

type ContactHandler struct {
	contactUC usecase.ContactUC
	logger    logger.Logger
}

func NewContactHandler(contactUC usecase.ContactUC, logger logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactUC: contactUC,
		logger:    logger,
	}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=4000"`
}

type contactResponse struct {
	ID int64 `json:"id"`
}

// Submit godoc
// @Summary      Submit a contact-form message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        message body contactRequest true "Message"
// @Success      201 {object} contactResponse
// @Failure      400 {object} ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "ContactHandler.Submit"

	var req contactRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		WriteError(w, e.Wrap(op, err))
		return
	}

	msg, err := h.contactUC.SubmitMessage(r.Context(), usecase.NewSubmitContactReq(req.Name, req.Email, req.Subject, req.Message))
	if err != nil {
		h.logger.Warnf("%s: %v", op, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, contactResponse{ID: msg.ID})
}
