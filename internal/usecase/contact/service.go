package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domcontact "github.com/kailas-cloud/folio/internal/domain/contact"
	"github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/notify"
	"github.com/kailas-cloud/folio/internal/usecase/formguard"
)

// Request is a public contact form submission.
type Request struct {
	Name    string
	Email   string
	Subject string
	Message string
	Guard   formguard.Submission
}

// Service handles the contact form.
type Service struct {
	repo       Repository
	guard      Guard
	mailer     domain.Mailer
	tasks      Dispatcher
	render     notify.Renderer
	adminEmail string
	now        func() time.Time
}

// New creates a contact service. The owner is notified at adminEmail; an
// empty address only stores messages.
func New(repo Repository, guard Guard, mailer domain.Mailer, tasks Dispatcher, adminEmail string) *Service {
	return &Service{repo: repo, guard: guard, mailer: mailer, tasks: tasks, adminEmail: adminEmail, now: time.Now}
}

// WithRenderer sets the email renderer.
func (s *Service) WithRenderer(r notify.Renderer) *Service {
	s.render = r
	return s
}

// Submit screens and stores a message and notifies the owner in the
// background. suppressed is true when the bot heuristics swallowed it.
func (s *Service) Submit(ctx context.Context, req Request) (msg domcontact.Message, suppressed bool, err error) {
	verdict, err := s.guard.Check(ctx, req.Guard)
	if err != nil {
		return domcontact.Message{}, false, err
	}
	if verdict == formguard.Suppress {
		logger.FromContext(ctx).Info("contact suppressed by bot heuristics")
		return domcontact.Message{}, true, nil
	}

	m, err := domcontact.New(req.Name, req.Email, req.Subject, req.Message, s.now())
	if err != nil {
		return domcontact.Message{}, false, err
	}
	saved, err := s.repo.Create(ctx, m)
	if err != nil {
		return domcontact.Message{}, false, fmt.Errorf("store contact message: %w", err)
	}

	if s.adminEmail != "" && s.mailer != nil && s.tasks != nil {
		s.tasks.Go(ctx, "contact_notification", func(ctx context.Context) error {
			if _, err := s.mailer.Send(ctx, s.render.ContactReceived(saved, s.adminEmail)); err != nil {
				return fmt.Errorf("notify owner of message %s: %w", saved.ID(), err)
			}
			return nil
		})
	}
	return saved, false, nil
}
