package newsletter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	domnews "github.com/kailas-cloud/folio/internal/domain/newsletter"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
	"github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/notify"
)

// DefaultSendDelay spaces out sends to stay under provider rate limits.
const DefaultSendDelay = 100 * time.Millisecond

// Service broadcasts newsletter issues with per-recipient error reporting.
type Service struct {
	subs   SubscriberLister
	mailer domain.Mailer
	render notify.Renderer
	delay  time.Duration
	sleep  func(time.Duration)
}

// New creates a newsletter service.
func New(subs SubscriberLister, mailer domain.Mailer) *Service {
	return &Service{subs: subs, mailer: mailer, delay: DefaultSendDelay, sleep: time.Sleep}
}

// WithRenderer sets the email renderer.
func (s *Service) WithRenderer(r notify.Renderer) *Service {
	s.render = r
	return s
}

// WithSendDelay sets the pause between two sends; 0 disables it.
func (s *Service) WithSendDelay(d time.Duration) *Service {
	if d >= 0 {
		s.delay = d
	}
	return s
}

// Send emails issue to every subscriber who has not turned the newsletter
// off. It keeps going after a failed recipient and runs to completion even if
// the caller goes away.
func (s *Service) Send(ctx context.Context, subject, content string) (domnews.Report, error) {
	issue, err := domnews.New(subject, content)
	if err != nil {
		return domnews.Report{}, err
	}

	ctx = context.WithoutCancel(ctx)
	subs, err := s.subs.ListAll(ctx)
	if err != nil {
		return domnews.Report{}, fmt.Errorf("list subscribers: %w", err)
	}

	recipients := make([]subscriber.Subscriber, 0, len(subs))
	for _, sub := range subs {
		if sub.Wants(subscriber.PrefNewsletter) {
			recipients = append(recipients, sub)
		}
	}

	log := logger.FromContext(ctx)
	deliveries := make([]domnews.Delivery, len(recipients))
	for i, sub := range recipients {
		if i > 0 && s.delay > 0 {
			s.sleep(s.delay)
		}
		if _, err := s.mailer.Send(ctx, s.render.Newsletter(issue, sub)); err != nil {
			log.Warn("newsletter delivery failed", zap.String("email", sub.Email()), zap.Error(err))
			deliveries[i] = domnews.NewFailed(sub.Email(), err)
			continue
		}
		deliveries[i] = domnews.NewSent(sub.Email())
	}

	report := domnews.Summarize(deliveries)
	log.Info("newsletter sent",
		zap.String("subject", issue.Subject()),
		zap.Int("total", report.Total),
		zap.Int("failed", report.FailedCount),
	)
	return report, nil
}
