package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/post"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
	"github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/notify"
)

// Service handles blog posts and the publish notification.
type Service struct {
	repo            Repository
	subs            SubscriberLister
	mailer          domain.Mailer
	tasks           Dispatcher
	render          notify.Renderer
	notifyOnPublish bool
	sendDelay       time.Duration
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
	sleep           func(ctx context.Context, d time.Duration) error
}

// New creates a blog service. Publish notifications are on by default.
func New(repo Repository, subs SubscriberLister, mailer domain.Mailer, tasks Dispatcher) *Service {
	return &Service{
		repo:            repo,
		subs:            subs,
		mailer:          mailer,
		tasks:           tasks,
		notifyOnPublish: true,
		defaultPageSize: 10,
		maxPageSize:     100,
		now:             time.Now,
		sleep:           sleep,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// WithNotifications configures the publish fan-out.
func (s *Service) WithNotifications(enabled bool, r notify.Renderer, sendDelay time.Duration) *Service {
	s.notifyOnPublish = enabled
	s.render = r
	s.sendDelay = sendDelay
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ListQuery is a blog listing request.
type ListQuery struct {
	Filter post.ListFilter
	Page   int
	Limit  int
	// Admin callers may list drafts; everyone else sees published posts only.
	Admin bool
}

// Create validates a draft, stores it under its derived slug and, when it is
// published, notifies subscribers.
func (s *Service) Create(ctx context.Context, d post.Draft) (post.Post, error) {
	p, err := post.New(d, s.now())
	if err != nil {
		return post.Post{}, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return post.Post{}, fmt.Errorf("create post: %w", err)
	}
	if created.Published() {
		s.announce(ctx, created)
	}
	return created, nil
}

// Get returns a post by slug. Drafts are invisible to non-admin callers.
func (s *Service) Get(ctx context.Context, slug string, admin bool) (post.Post, error) {
	p, err := s.repo.Get(ctx, slug)
	if err != nil {
		return post.Post{}, fmt.Errorf("get post: %w", err)
	}
	if !admin && !p.Published() {
		return post.Post{}, domain.NotFoundf("post %q not found", slug)
	}
	return p, nil
}

// List returns one page of posts, newest first.
func (s *Service) List(ctx context.Context, q ListQuery) ([]post.Post, domain.Pagination, error) {
	f := q.Filter
	f.Category = strings.TrimSpace(f.Category)
	f.Tag = strings.TrimSpace(f.Tag)
	if !q.Admin {
		published := true
		f.Published = &published
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	posts, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("list posts: %w", err)
	}
	page, meta := domain.Paginate(posts, q.Page, limit)
	return page, meta, nil
}

// Update applies a partial update. Publishing a draft notifies subscribers.
func (s *Service) Update(ctx context.Context, slug string, patch *post.Patch) (post.Post, error) {
	if err := patch.Validate(); err != nil {
		return post.Post{}, err
	}
	current, err := s.repo.Get(ctx, slug)
	if err != nil {
		return post.Post{}, fmt.Errorf("get post: %w", err)
	}
	updated, err := s.repo.Update(ctx, slug, patch, s.now())
	if err != nil {
		return post.Post{}, fmt.Errorf("update post: %w", err)
	}
	if patch.Publishes(current) {
		s.announce(ctx, updated)
	}
	return updated, nil
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// View counts one read of a published post. Concurrent views may overwrite
// each other: the counter is read-modify-write without a transaction.
func (s *Service) View(ctx context.Context, slug string) (int64, error) {
	p, err := s.Get(ctx, slug, false)
	if err != nil {
		return 0, err
	}
	updated, err := s.repo.SetViewCount(ctx, slug, p.ViewCount()+1)
	if err != nil {
		return 0, fmt.Errorf("count view: %w", err)
	}
	return updated.ViewCount(), nil
}

// Like toggles liker's like on a published post and returns the new like
// count and whether liker now likes it.
func (s *Service) Like(ctx context.Context, slug, liker string) (int, bool, error) {
	liker = strings.TrimSpace(liker)
	if liker == "" {
		return 0, false, domain.Validationf("userId is required")
	}
	p, err := s.Get(ctx, slug, false)
	if err != nil {
		return 0, false, err
	}
	likes, liked := p.ToggleLike(liker)
	if _, err := s.repo.SetLikes(ctx, slug, likes); err != nil {
		return 0, false, fmt.Errorf("toggle like: %w", err)
	}
	return len(likes), liked, nil
}

// announce emails every subscriber who has not opted out of blog updates.
// It runs detached; failures are logged per recipient.
func (s *Service) announce(ctx context.Context, p post.Post) {
	if !s.notifyOnPublish || s.tasks == nil {
		return
	}
	s.tasks.Go(ctx, "post_published", func(ctx context.Context) error {
		log := logger.FromContext(ctx).With(zap.String("slug", p.Slug()))
		subs, err := s.subs.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list subscribers: %w", err)
		}

		sent, failed := 0, 0
		for _, sub := range subs {
			if !sub.Wants(subscriber.PrefBlogUpdates) {
				continue
			}
			if sent+failed > 0 && s.sendDelay > 0 {
				if err := s.sleep(ctx, s.sendDelay); err != nil {
					return err
				}
			}
			if _, err := s.mailer.Send(ctx, s.render.PostPublished(p, sub)); err != nil {
				failed++
				log.Warn("post notification failed", zap.String("email", sub.Email()), zap.Error(err))
				continue
			}
			sent++
		}
		log.Info("post notification sent", zap.Int("sent", sent), zap.Int("failed", failed))
		return nil
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
