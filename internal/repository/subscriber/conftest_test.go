package subscriber

import (
	"context"

	"github.com/kailas-cloud/folio/internal/docstore"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn     func(ctx context.Context, collection, id string) (docstore.Record, error)
	existsFn  func(ctx context.Context, collection, id string) (bool, error)
	createFn  func(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	deleteFn  func(ctx context.Context, collection, id string) (bool, error)
	listAllFn func(ctx context.Context, collection string, pageSize int) ([]docstore.Record, error)
}

func (m *mockStore) Get(ctx context.Context, collection, id string) (docstore.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, collection, id)
	}
	return nil, nil
}

func (m *mockStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, collection, id)
	}
	return false, nil
}

func (m *mockStore) Create(
	ctx context.Context, collection, id string, fields docstore.Record,
) (docstore.Record, error) {
	if m.createFn != nil {
		return m.createFn(ctx, collection, id, fields)
	}
	return docstore.Record{docstore.FieldID: id}, nil
}

func (m *mockStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, collection, id)
	}
	return true, nil
}

func (m *mockStore) ListAll(ctx context.Context, collection string, pageSize int) ([]docstore.Record, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx, collection, pageSize)
	}
	return nil, nil
}
