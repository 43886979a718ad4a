// Package contact relays CAPTCHA-gated contact form submissions by email.
package contact

import (
	"context"
	"fmt"
	"strings"

	"storefront-api/internal/apperr"
	"storefront-api/internal/gateway/captcha"
	"storefront-api/internal/gateway/mail"
	"storefront-api/internal/logx"
)

type verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (*captcha.Assessment, error)
}

type sender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Config stores contact relay settings.
type Config struct {
	MinScore    float64
	SenderEmail string
	SenderName  string
	Recipient   string
}

// Service verifies the CAPTCHA and relays the message.
type Service struct {
	verifier verifier
	sender   sender
	cfg      Config
	logger   logx.Logger
}

// NewService creates a contact relay service.
func NewService(v verifier, snd sender, cfg Config, logger logx.Logger) *Service {
	return &Service{verifier: v, sender: snd, cfg: cfg, logger: logger}
}

// Submission is one contact form post.
type Submission struct {
	Name         string
	Email        string
	Message      string
	CaptchaToken string
	RemoteIP     string
}

func (sub Submission) validate() error {
	if strings.TrimSpace(sub.Name) == "" ||
		strings.TrimSpace(sub.Email) == "" ||
		strings.TrimSpace(sub.Message) == "" ||
		strings.TrimSpace(sub.CaptchaToken) == "" {
		return apperr.ErrInvalid
	}
	if !strings.Contains(sub.Email, "@") {
		return apperr.ErrInvalid
	}
	return nil
}

// Submit verifies the token, then relays the message to the configured
// recipient with reply-to set to the visitor.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	if err := sub.validate(); err != nil {
		return fmt.Errorf("contact: %w", err)
	}

	assessment, err := s.verifier.Verify(ctx, sub.CaptchaToken, sub.RemoteIP)
	if err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	if !assessment.Success || assessment.Score < s.cfg.MinScore {
		s.logger.Warn("contact submission rejected by captcha",
			logx.Float64("score", assessment.Score),
			logx.Bool("success", assessment.Success),
		)
		return fmt.Errorf("contact: captcha rejected: %w", apperr.ErrInvalid)
	}

	msg := mail.Message{
		FromEmail: s.cfg.SenderEmail,
		FromName:  s.cfg.SenderName,
		ToEmail:   s.cfg.Recipient,
		ReplyTo:   sub.Email,
		Subject:   "Contact form: " + strings.TrimSpace(sub.Name),
		TextBody:  sub.Message,
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("contact: %w", err)
	}

	s.logger.Info("contact submission relayed", logx.String("from", sub.Email))
	return nil
}
