package domain

import (
	"context"
	"fmt"
	"strings"
)

// Mailer is the shared outbound email contract between layers.
type Mailer interface {
	Send(ctx context.Context, email Email) (SendResult, error)
}

// Email is one outbound transactional message.
type Email struct {
	To          string
	ToName      string
	Subject     string
	HTMLContent string
	TextContent string
	ReplyTo     string
	// Kind labels the message for metrics: welcome, post, newsletter, contact.
	Kind string
}

// SendResult is the provider's acknowledgement.
type SendResult struct {
	MessageID string
}

// Validate checks the fields every provider requires.
func (e Email) Validate() error {
	if strings.TrimSpace(e.To) == "" {
		return fmt.Errorf("email recipient is required")
	}
	if strings.TrimSpace(e.Subject) == "" {
		return fmt.Errorf("email subject is required")
	}
	if e.HTMLContent == "" && e.TextContent == "" {
		return fmt.Errorf("email body is required")
	}
	return nil
}
