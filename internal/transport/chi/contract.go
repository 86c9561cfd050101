package chi

import (
	"context"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/contact"
	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
	domnews "github.com/kailas-cloud/folio/internal/domain/newsletter"
	"github.com/kailas-cloud/folio/internal/domain/post"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
	bloguc "github.com/kailas-cloud/folio/internal/usecase/blog"
	contactuc "github.com/kailas-cloud/folio/internal/usecase/contact"
	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
	subscribeuc "github.com/kailas-cloud/folio/internal/usecase/subscribe"
)

// BlogService is what the blog handlers need.
type BlogService interface {
	Create(ctx context.Context, d post.Draft) (post.Post, error)
	Get(ctx context.Context, slug string, admin bool) (post.Post, error)
	List(ctx context.Context, q bloguc.ListQuery) ([]post.Post, domain.Pagination, error)
	Update(ctx context.Context, slug string, patch *post.Patch) (post.Post, error)
	Delete(ctx context.Context, slug string) error
	View(ctx context.Context, slug string) (int64, error)
	Like(ctx context.Context, slug, liker string) (int, bool, error)
}

// SubscribeService is what the subscriber handlers need.
type SubscribeService interface {
	Subscribe(ctx context.Context, req subscribeuc.Request) (subscribeuc.Result, error)
	Unsubscribe(ctx context.Context, email string) error
	List(ctx context.Context, page, limit int) ([]subscriber.Subscriber, domain.Pagination, error)
}

// NewsletterService broadcasts an issue.
type NewsletterService interface {
	Send(ctx context.Context, subject, content string) (domnews.Report, error)
}

// LinkedInService manages LinkedIn drafts.
type LinkedInService interface {
	Create(ctx context.Context, f domli.Fields) (domli.Item, error)
	Get(ctx context.Context, id string) (domli.Item, error)
	List(ctx context.Context, f domli.ListFilter) ([]domli.Item, error)
	Update(ctx context.Context, id string, p domli.Patch) (domli.Item, error)
	Delete(ctx context.Context, id string) error
	Generate(ctx context.Context, req domli.GenerateRequest) (domli.Item, error)
}

// ContactService accepts contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, req contactuc.Request) (contact.Message, bool, error)
}

// HealthService reports dependency health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
