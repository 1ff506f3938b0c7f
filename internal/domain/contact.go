package domain

import "context"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=80"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company,omitempty" validate:"omitempty,max=120"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
	// Turnstile token. The key must be present; an empty value fails verification instead.
	Token *string `json:"token" validate:"required"`
}

// BotVerifier checks a bot-verification token. Any failure reads as false.
type BotVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) bool
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates, verifies and forwards a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest, meta RequestMeta) error
}
