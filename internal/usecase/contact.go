package usecase

import (
	"context"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/apperror"
	"portfolio-api/pkg/email"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/security"
	"portfolio-api/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const contactEndpoint = "/api/contact"

// ContactMailer is the part of email.EmailService the contact flow needs.
type ContactMailer interface {
	SendContactEmail(ctx context.Context, data email.ContactEmailData) error
}

type contactUsecase struct {
	validate *validator.Validate
	verifier domain.BotVerifier
	mailer   ContactMailer
	secLog   *security.SecurityLogger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(validate *validator.Validate, verifier domain.BotVerifier, mailer ContactMailer, secLog *security.SecurityLogger) domain.ContactUsecase {
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	return &contactUsecase{
		validate: validate,
		verifier: verifier,
		mailer:   mailer,
		secLog:   secLog,
	}
}

// SendContactMessage validates the contact request, checks the bot token and sends the email.
// Which field failed is logged but never returned.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, meta domain.RequestMeta) error {
	if err := uc.validate.Struct(req); err != nil {
		uc.secLog.LogValidationFailed(ctx, req.Email, meta.ClientIP, meta.RequestID, contactEndpoint, validation.FieldNames(err))
		return apperror.Validation("Invalid input", err)
	}

	if !uc.verifier.Verify(ctx, *req.Token, meta.ClientIP) {
		uc.secLog.LogVerificationFailed(ctx, meta.ClientIP, meta.UserAgent, meta.RequestID, contactEndpoint)
		return apperror.VerificationFailed("Verification failed")
	}

	err := uc.mailer.SendContactEmail(ctx, email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Company:     req.Company,
		Message:     req.Message,
	})
	if err != nil {
		logger.Log.Error("contact email failed", "request_id", meta.RequestID, "error", err)
		return apperror.Upstream("Server error", err)
	}

	return nil
}
