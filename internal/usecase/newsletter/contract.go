package newsletter

import (
	"context"

	"github.com/kailas-cloud/folio/internal/domain/subscriber"
)

// SubscriberLister reads every subscriber for a broadcast.
type SubscriberLister interface {
	ListAll(ctx context.Context) ([]subscriber.Subscriber, error)
}
