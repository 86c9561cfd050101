package subscriber

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/folio/internal/docstore"
	"github.com/kailas-cloud/folio/internal/domain"
	domsub "github.com/kailas-cloud/folio/internal/domain/subscriber"
)

// Collection is the store collection holding subscribers.
const Collection = "subscribers"

const defaultPageSize = 300

// store is the consumer interface for subscribers (ISP).
type store interface {
	Get(ctx context.Context, collection, id string) (docstore.Record, error)
	Exists(ctx context.Context, collection, id string) (bool, error)
	Create(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	Delete(ctx context.Context, collection, id string) (bool, error)
	ListAll(ctx context.Context, collection string, pageSize int) ([]docstore.Record, error)
}

// Repo implements the subscriber repositories of usecase/subscribe and usecase/newsletter.
type Repo struct {
	store    store
	pageSize int
}

// New creates a subscriber repository.
func New(s store) *Repo {
	return &Repo{store: s, pageSize: defaultPageSize}
}

// WithPageSize sets the scan page size used by ListAll.
func (r *Repo) WithPageSize(n int) *Repo {
	if n > 0 {
		r.pageSize = n
	}
	return r
}

// Exists reports whether the normalized address is subscribed.
func (r *Repo) Exists(ctx context.Context, email string) (bool, error) {
	ok, err := r.store.Exists(ctx, Collection, email)
	if err != nil {
		return false, fmt.Errorf("check subscriber: %w", err)
	}
	return ok, nil
}

// Create stores a subscriber keyed by its normalized email.
func (r *Repo) Create(ctx context.Context, s domsub.Subscriber) error {
	_, err := r.store.Create(ctx, Collection, s.Email(), subscriberToRecord(s))
	if err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return domain.Conflictf("this email is already subscribed")
		}
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

// Get returns a subscriber by normalized email.
func (r *Repo) Get(ctx context.Context, email string) (domsub.Subscriber, error) {
	rec, err := r.store.Get(ctx, Collection, email)
	if err != nil {
		return domsub.Subscriber{}, fmt.Errorf("get subscriber: %w", err)
	}
	if rec == nil {
		return domsub.Subscriber{}, domain.NotFoundf("subscriber not found")
	}
	return subscriberFromRecord(rec), nil
}

// Delete removes a subscriber. A missing subscriber is ErrNotFound.
func (r *Repo) Delete(ctx context.Context, email string) error {
	if _, err := r.Get(ctx, email); err != nil {
		return err
	}
	if _, err := r.store.Delete(ctx, Collection, email); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}

// ListAll returns every subscriber, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]domsub.Subscriber, error) {
	recs, err := r.store.ListAll(ctx, Collection, r.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	subs := make([]domsub.Subscriber, len(recs))
	for i, rec := range recs {
		subs[i] = subscriberFromRecord(rec)
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].SubscribedAt().After(subs[j].SubscribedAt())
	})
	return subs, nil
}
