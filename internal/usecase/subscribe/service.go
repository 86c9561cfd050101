package subscribe

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
	"github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/notify"
	"github.com/kailas-cloud/folio/internal/usecase/formguard"
)

// Request is a public subscribe form submission.
type Request struct {
	Email       string
	Name        string
	Source      string
	Preferences map[string]bool
	Guard       formguard.Submission
}

// Result reports what happened. Suppressed submissions look successful to the
// caller but nothing was stored.
type Result struct {
	Subscriber subscriber.Subscriber
	Suppressed bool
}

// Service handles newsletter subscriptions.
type Service struct {
	repo   Repository
	guard  Guard
	mailer domain.Mailer
	tasks  Dispatcher
	render notify.Renderer
	now    func() time.Time
}

// New creates a subscribe service. mailer may be nil to skip welcome emails.
func New(repo Repository, guard Guard, mailer domain.Mailer, tasks Dispatcher) *Service {
	return &Service{repo: repo, guard: guard, mailer: mailer, tasks: tasks, now: time.Now}
}

// WithRenderer sets the email renderer.
func (s *Service) WithRenderer(r notify.Renderer) *Service {
	s.render = r
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Subscribe screens, validates and stores a subscriber, then sends a welcome
// email in the background.
func (s *Service) Subscribe(ctx context.Context, req Request) (Result, error) {
	verdict, err := s.guard.Check(ctx, req.Guard)
	if err != nil {
		return Result{}, err
	}
	if verdict == formguard.Suppress {
		logger.FromContext(ctx).Info("subscribe suppressed by bot heuristics")
		return Result{Suppressed: true}, nil
	}

	sub, err := subscriber.New(req.Email, req.Name, req.Source, req.Preferences, s.now())
	if err != nil {
		return Result{}, err
	}

	exists, err := s.repo.Exists(ctx, sub.Email())
	if err != nil {
		return Result{}, fmt.Errorf("check subscriber: %w", err)
	}
	if exists {
		return Result{}, domain.Conflictf("this email is already subscribed")
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return Result{}, fmt.Errorf("create subscriber: %w", err)
	}

	s.welcome(ctx, sub)
	return Result{Subscriber: sub}, nil
}

// Unsubscribe removes an address.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	email = subscriber.NormalizeEmail(email)
	if !subscriber.ValidEmail(email) {
		return domain.Validationf("invalid email address")
	}
	if err := s.repo.Delete(ctx, email); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}

// List returns one page of subscribers, newest first.
func (s *Service) List(ctx context.Context, page, limit int) ([]subscriber.Subscriber, domain.Pagination, error) {
	subs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("list subscribers: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}
	out, meta := domain.Paginate(subs, page, limit)
	return out, meta, nil
}

func (s *Service) welcome(ctx context.Context, sub subscriber.Subscriber) {
	if s.mailer == nil || s.tasks == nil {
		return
	}
	s.tasks.Go(ctx, "welcome_email", func(ctx context.Context) error {
		res, err := s.mailer.Send(ctx, s.render.Welcome(sub))
		if err != nil {
			return fmt.Errorf("welcome email to %s: %w", sub.Email(), err)
		}
		logger.FromContext(ctx).Debug("welcome email sent", zap.String("message_id", res.MessageID))
		return nil
	})
}
