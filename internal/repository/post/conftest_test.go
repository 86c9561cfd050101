package post

import (
	"context"

	"github.com/kailas-cloud/folio/internal/docstore"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn      func(ctx context.Context, collection, id string) (docstore.Record, error)
	existsFn   func(ctx context.Context, collection, id string) (bool, error)
	createFn   func(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	updateFn   func(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	deleteFn   func(ctx context.Context, collection, id string) (bool, error)
	runQueryFn func(ctx context.Context, q docstore.QueryRequest) ([]docstore.Record, error)
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
	rec := docstore.Record{docstore.FieldID: id}
	for k, v := range fields {
		rec[k] = v
	}
	return rec, nil
}

func (m *mockStore) Update(
	ctx context.Context, collection, id string, fields docstore.Record,
) (docstore.Record, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, collection, id, fields)
	}
	rec := docstore.Record{docstore.FieldID: id}
	for k, v := range fields {
		rec[k] = v
	}
	return rec, nil
}

func (m *mockStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, collection, id)
	}
	return true, nil
}

func (m *mockStore) RunQuery(ctx context.Context, q docstore.QueryRequest) ([]docstore.Record, error) {
	if m.runQueryFn != nil {
		return m.runQueryFn(ctx, q)
	}
	return nil, nil
}
