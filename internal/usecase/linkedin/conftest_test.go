package linkedin

import (
	"context"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
)

type mockRepo struct {
	createFn     func(ctx context.Context, it domli.Item) (domli.Item, error)
	getFn        func(ctx context.Context, id string) (domli.Item, error)
	listFn       func(ctx context.Context, f domli.ListFilter) ([]domli.Item, error)
	updateFn     func(ctx context.Context, id string, p domli.Patch, now time.Time) (domli.Item, error)
	softDeleteFn func(ctx context.Context, id string, now time.Time) error
}

func (m *mockRepo) Create(ctx context.Context, it domli.Item) (domli.Item, error) {
	if m.createFn != nil {
		return m.createFn(ctx, it)
	}
	return it.WithID("new-id"), nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domli.Item, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domli.Item{}, domain.NotFoundf("content %q not found", id)
}

func (m *mockRepo) List(ctx context.Context, f domli.ListFilter) ([]domli.Item, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return nil, nil
}

func (m *mockRepo) Update(ctx context.Context, id string, p domli.Patch, now time.Time) (domli.Item, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, p, now)
	}
	return domli.Item{}, nil
}

func (m *mockRepo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, id, now)
	}
	return nil
}

type mockGenerator struct {
	out domli.Generated
	err error
	got domli.GenerateRequest
}

func (m *mockGenerator) Generate(_ context.Context, req domli.GenerateRequest) (domli.Generated, error) {
	m.got = req
	return m.out, m.err
}
