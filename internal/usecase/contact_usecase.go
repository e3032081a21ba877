package usecase

import (
	"context"
	"strings"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
)

// ContactUseCase stores contact-form submissions from the public site.
type ContactUseCase struct {
	contactRepo ContactRepository
	logger      logger.Logger
}

func NewContactUC(contactRepo ContactRepository, logger logger.Logger) *ContactUseCase {
	return &ContactUseCase{contactRepo: contactRepo, logger: logger}
}

func (c *ContactUseCase) SubmitMessage(ctx context.Context, req *SubmitContactReq) (*domain.ContactMessage, error) {
	const op = "ContactUseCase.SubmitMessage"

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	msg, err := c.contactRepo.Insert(ctx, domain.NewContactMessage(name, email, strings.TrimSpace(req.Subject), message))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return msg, nil
}
