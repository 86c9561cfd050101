package mail

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/metrics"
)

const providerLog = "log"

// Log writes outgoing mail to the logger instead of sending it.
type Log struct {
	log *zap.Logger
}

// NewLog creates a log-only mailer.
func NewLog(l *zap.Logger) *Log {
	if l == nil {
		l = zap.NewNop()
	}
	return &Log{log: l}
}

// Send implements domain.Mailer.
func (m *Log) Send(ctx context.Context, email domain.Email) (domain.SendResult, error) {
	if err := email.Validate(); err != nil {
		metrics.MailSentTotal.WithLabelValues(providerLog, kindLabel(email.Kind), "error").Inc()
		return domain.SendResult{}, err
	}
	id := "<" + uuid.NewString() + "@folio.local>"
	logger.FromContextOr(ctx, m.log).Info("email (not sent)",
		zap.String("message_id", id),
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("kind", email.Kind),
		zap.Int("html_bytes", len(email.HTMLContent)),
	)
	metrics.MailSentTotal.WithLabelValues(providerLog, kindLabel(email.Kind), "success").Inc()
	return domain.SendResult{MessageID: id}, nil
}
