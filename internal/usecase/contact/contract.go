package contact

import (
	"context"

	domcontact "github.com/kailas-cloud/folio/internal/domain/contact"
	"github.com/kailas-cloud/folio/internal/usecase/formguard"
)

// Repository stores contact messages.
type Repository interface {
	Create(ctx context.Context, m domcontact.Message) (domcontact.Message, error)
}

// Guard screens public submissions.
type Guard interface {
	Check(ctx context.Context, s formguard.Submission) (formguard.Verdict, error)
}

// Dispatcher runs detached side effects.
type Dispatcher interface {
	Go(ctx context.Context, task string, fn func(ctx context.Context) error)
}
