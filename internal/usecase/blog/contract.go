package blog

import (
	"context"
	"time"

	"github.com/kailas-cloud/folio/internal/domain/post"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
)

// Repository defines the storage contract for posts.
type Repository interface {
	Create(ctx context.Context, p post.Post) (post.Post, error)
	Get(ctx context.Context, slug string) (post.Post, error)
	List(ctx context.Context, f post.ListFilter) ([]post.Post, error)
	Update(ctx context.Context, slug string, p *post.Patch, now time.Time) (post.Post, error)
	SetViewCount(ctx context.Context, slug string, n int64) (post.Post, error)
	SetLikes(ctx context.Context, slug string, likes []string) (post.Post, error)
	Delete(ctx context.Context, slug string) error
}

// SubscriberLister reads the whole subscriber list for the publish fan-out.
type SubscriberLister interface {
	ListAll(ctx context.Context) ([]subscriber.Subscriber, error)
}

// Dispatcher runs detached side effects.
type Dispatcher interface {
	Go(ctx context.Context, task string, fn func(ctx context.Context) error)
}
