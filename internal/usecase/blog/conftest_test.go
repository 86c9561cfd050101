package blog

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/post"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
)

type mockRepo struct {
	createFn   func(ctx context.Context, p post.Post) (post.Post, error)
	getFn      func(ctx context.Context, slug string) (post.Post, error)
	listFn     func(ctx context.Context, f post.ListFilter) ([]post.Post, error)
	updateFn   func(ctx context.Context, slug string, p *post.Patch, now time.Time) (post.Post, error)
	setViewsFn func(ctx context.Context, slug string, n int64) (post.Post, error)
	setLikesFn func(ctx context.Context, slug string, likes []string) (post.Post, error)
	deleteFn   func(ctx context.Context, slug string) error
}

func (m *mockRepo) Create(ctx context.Context, p post.Post) (post.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return p, nil
}

func (m *mockRepo) Get(ctx context.Context, slug string) (post.Post, error) {
	if m.getFn != nil {
		return m.getFn(ctx, slug)
	}
	return post.Post{}, domain.NotFoundf("post %q not found", slug)
}

func (m *mockRepo) List(ctx context.Context, f post.ListFilter) ([]post.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return nil, nil
}

func (m *mockRepo) Update(ctx context.Context, slug string, p *post.Patch, now time.Time) (post.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, slug, p, now)
	}
	return post.Reconstruct(post.State{Slug: slug}), nil
}

func (m *mockRepo) SetViewCount(ctx context.Context, slug string, n int64) (post.Post, error) {
	if m.setViewsFn != nil {
		return m.setViewsFn(ctx, slug, n)
	}
	return post.Reconstruct(post.State{Slug: slug, ViewCount: n}), nil
}

func (m *mockRepo) SetLikes(ctx context.Context, slug string, likes []string) (post.Post, error) {
	if m.setLikesFn != nil {
		return m.setLikesFn(ctx, slug, likes)
	}
	return post.Reconstruct(post.State{Slug: slug, Likes: likes}), nil
}

func (m *mockRepo) Delete(ctx context.Context, slug string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, slug)
	}
	return nil
}

type mockSubs struct {
	subs []subscriber.Subscriber
	err  error
}

func (m *mockSubs) ListAll(context.Context) ([]subscriber.Subscriber, error) {
	return m.subs, m.err
}

// mockMailer records every message and fails for addresses in fail.
type mockMailer struct {
	mu   sync.Mutex
	sent []domain.Email
	fail map[string]error
}

func (m *mockMailer) Send(_ context.Context, e domain.Email) (domain.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	if err := m.fail[e.To]; err != nil {
		return domain.SendResult{}, err
	}
	return domain.SendResult{MessageID: "msg"}, nil
}

func (m *mockMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	for i, e := range m.sent {
		out[i] = e.To
	}
	return out
}

// syncDispatcher runs tasks inline so tests observe their effects.
type syncDispatcher struct {
	tasks []string
	errs  []error
}

func (d *syncDispatcher) Go(ctx context.Context, task string, fn func(ctx context.Context) error) {
	d.tasks = append(d.tasks, task)
	if err := fn(context.WithoutCancel(ctx)); err != nil {
		d.errs = append(d.errs, err)
	}
}
