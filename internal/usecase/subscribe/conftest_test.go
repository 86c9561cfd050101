package subscribe

import (
	"context"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
	"github.com/kailas-cloud/folio/internal/usecase/formguard"
)

type mockRepo struct {
	existsFn  func(ctx context.Context, email string) (bool, error)
	createFn  func(ctx context.Context, s subscriber.Subscriber) error
	deleteFn  func(ctx context.Context, email string) error
	listAllFn func(ctx context.Context) ([]subscriber.Subscriber, error)
}

func (m *mockRepo) Exists(ctx context.Context, email string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, email)
	}
	return false, nil
}

func (m *mockRepo) Create(ctx context.Context, s subscriber.Subscriber) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, email string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, email)
	}
	return nil
}

func (m *mockRepo) ListAll(ctx context.Context) ([]subscriber.Subscriber, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

type mockGuard struct {
	verdict formguard.Verdict
	err     error
}

func (m *mockGuard) Check(context.Context, formguard.Submission) (formguard.Verdict, error) {
	return m.verdict, m.err
}

type mockMailer struct {
	sent []domain.Email
	err  error
}

func (m *mockMailer) Send(_ context.Context, e domain.Email) (domain.SendResult, error) {
	m.sent = append(m.sent, e)
	return domain.SendResult{MessageID: "m1"}, m.err
}

type syncDispatcher struct {
	errs []error
}

func (d *syncDispatcher) Go(ctx context.Context, _ string, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		d.errs = append(d.errs, err)
	}
}
