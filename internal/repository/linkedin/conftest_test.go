package linkedin

import (
	"context"

	"github.com/kailas-cloud/folio/internal/docstore"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn      func(ctx context.Context, collection, id string) (docstore.Record, error)
	createFn   func(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	updateFn   func(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	runQueryFn func(ctx context.Context, q docstore.QueryRequest) ([]docstore.Record, error)
}

func (m *mockStore) Get(ctx context.Context, collection, id string) (docstore.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, collection, id)
	}
	return nil, nil
}

func (m *mockStore) Create(
	ctx context.Context, collection, id string, fields docstore.Record,
) (docstore.Record, error) {
	if m.createFn != nil {
		return m.createFn(ctx, collection, id, fields)
	}
	return withID(fields, "minted"), nil
}

func (m *mockStore) Update(
	ctx context.Context, collection, id string, fields docstore.Record,
) (docstore.Record, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, collection, id, fields)
	}
	return withID(fields, id), nil
}

func (m *mockStore) RunQuery(ctx context.Context, q docstore.QueryRequest) ([]docstore.Record, error) {
	if m.runQueryFn != nil {
		return m.runQueryFn(ctx, q)
	}
	return nil, nil
}

func withID(fields docstore.Record, id string) docstore.Record {
	out := docstore.Record{docstore.FieldID: id}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
