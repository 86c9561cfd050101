package linkedin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/folio/internal/docstore"
	"github.com/kailas-cloud/folio/internal/domain"
	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
)

// Collection is the store collection holding LinkedIn content.
const Collection = "linkedinContent"

// store is the consumer interface for LinkedIn content (ISP).
type store interface {
	Get(ctx context.Context, collection, id string) (docstore.Record, error)
	Create(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	Update(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	RunQuery(ctx context.Context, q docstore.QueryRequest) ([]docstore.Record, error)
}

// Repo implements usecase/linkedin.Repository. Deletes are soft: items keep
// their document with isDeleted set and vanish from reads.
type Repo struct {
	store store
}

// New creates a LinkedIn content repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new item under a store-minted id.
func (r *Repo) Create(ctx context.Context, it domli.Item) (domli.Item, error) {
	rec, err := r.store.Create(ctx, Collection, "", itemToRecord(it))
	if err != nil {
		return domli.Item{}, fmt.Errorf("create linkedin content: %w", err)
	}
	if rec == nil || rec.ID() == "" {
		return domli.Item{}, errors.New("create linkedin content: store returned no id")
	}
	return itemFromRecord(rec), nil
}

// Get returns a live item. Soft-deleted items are not found.
func (r *Repo) Get(ctx context.Context, id string) (domli.Item, error) {
	rec, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return domli.Item{}, fmt.Errorf("get linkedin content: %w", err)
	}
	if rec == nil || rec.Bool(fieldDeleted) {
		return domli.Item{}, domain.NotFoundf("content %q not found", id)
	}
	return itemFromRecord(rec), nil
}

// List returns live items matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f domli.ListFilter) ([]domli.Item, error) {
	q := docstore.NewQuery(Collection).Where(fieldDeleted, docstore.Equal, false)
	if f.ContentType != "" {
		q.Where(fieldContentType, docstore.Equal, string(f.ContentType))
	}
	if f.Status != "" {
		q.Where(fieldStatus, docstore.Equal, string(f.Status))
	}
	req, err := q.OrderBy(fieldCreatedAt, docstore.Descending).Build()
	if err != nil {
		return nil, fmt.Errorf("build linkedin query: %w", err)
	}
	recs, err := r.store.RunQuery(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("query linkedin content: %w", err)
	}
	items := make([]domli.Item, len(recs))
	for i, rec := range recs {
		items[i] = itemFromRecord(rec)
	}
	return items, nil
}

// Update writes a normalized patch plus updatedAt.
func (r *Repo) Update(ctx context.Context, id string, p domli.Patch, now time.Time) (domli.Item, error) {
	fields := patchToRecord(p)
	fields[fieldUpdatedAt] = now.UTC()
	return r.update(ctx, id, fields)
}

// SoftDelete flags the item as deleted.
func (r *Repo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	_, err := r.update(ctx, id, docstore.Record{fieldDeleted: true, fieldUpdatedAt: now.UTC()})
	return err
}

func (r *Repo) update(ctx context.Context, id string, fields docstore.Record) (domli.Item, error) {
	rec, err := r.store.Update(ctx, Collection, id, fields)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domli.Item{}, domain.NotFoundf("content %q not found", id)
		}
		return domli.Item{}, fmt.Errorf("update linkedin content: %w", err)
	}
	if rec == nil {
		return r.Get(ctx, id)
	}
	return itemFromRecord(rec), nil
}
