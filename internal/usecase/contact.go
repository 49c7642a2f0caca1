package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"contact-relay-backend/config"
	"contact-relay-backend/internal/domain"
	"contact-relay-backend/pkg/mailer"
	"contact-relay-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	sender     mailer.Sender
	validate   *validator.Validate
	log        *slog.Logger
	from       string
	to         string
	ackEnabled bool
}

// NewContactUsecase creates a new contact usecase. A nil sender means the
// transport is not configured; submissions are then rejected as unavailable
// instead of silently dropped.
func NewContactUsecase(sender mailer.Sender, validate *validator.Validate, log *slog.Logger, cfg *config.Config) domain.ContactUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &contactUsecase{
		sender:     sender,
		validate:   validate,
		log:        log,
		from:       cfg.MailFrom,
		to:         cfg.ContactEmailTo,
		ackEnabled: cfg.AckEnabled,
	}
}

// SendContactMessage validates the submission, relays the notification to the
// site owner and, when enabled, acknowledges the submitter. The two sends are
// strictly ordered and the acknowledgement is attempted at most once; its
// failure never changes the outcome once the notification went out.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if err := uc.validate.Struct(req); err != nil {
		return &domain.ValidationError{Messages: validation.FormatContactErrors(err)}
	}

	if uc.sender == nil || uc.to == "" {
		return domain.ErrMailNotConfigured
	}

	notification, err := buildNotification(uc.from, uc.to, req)
	if err != nil {
		return err
	}
	if err := uc.sender.Send(ctx, notification); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	uc.log.Info("contact notification sent", "to", uc.to, "reply_to", notification.ReplyTo)

	if uc.ackEnabled {
		ack, err := buildAcknowledgement(uc.from, req)
		if err != nil {
			uc.log.Error("failed to build acknowledgement email", "error", err)
			return nil
		}
		if err := uc.sender.Send(ctx, ack); err != nil {
			// Non-fatal: the owner already has the message
			uc.log.Warn("acknowledgement email failed", "to", ack.To, "error", err)
			return nil
		}
		uc.log.Info("acknowledgement email sent", "to", ack.To)
	}

	return nil
}
