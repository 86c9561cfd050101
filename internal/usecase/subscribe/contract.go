package subscribe

import (
	"context"

	"github.com/kailas-cloud/folio/internal/domain/subscriber"
	"github.com/kailas-cloud/folio/internal/usecase/formguard"
)

// Repository defines the storage contract for subscribers.
type Repository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, s subscriber.Subscriber) error
	Delete(ctx context.Context, email string) error
	ListAll(ctx context.Context) ([]subscriber.Subscriber, error)
}

// Guard screens public submissions.
type Guard interface {
	Check(ctx context.Context, s formguard.Submission) (formguard.Verdict, error)
}

// Dispatcher runs detached side effects.
type Dispatcher interface {
	Go(ctx context.Context, task string, fn func(ctx context.Context) error)
}
