package domain

import (
	"context"
	"errors"
	"strings"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"notblank,max=100"`
	Email   string `json:"email" validate:"required,contact_email"`
	Message string `json:"message" validate:"notblank,max=2000"`
}

// ValidationError carries the ordered, user-facing messages for a rejected
// submission. The handler turns it into the 400 errors array.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ErrMailNotConfigured is returned when the transport has no credentials and
// a delivery would be pointless.
var ErrMailNotConfigured = errors.New("mail transport is not configured")

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the submission and relays it to the site
	// owner, optionally acknowledging the submitter.
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
