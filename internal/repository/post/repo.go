package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/folio/internal/docstore"
	"github.com/kailas-cloud/folio/internal/domain"
	dompost "github.com/kailas-cloud/folio/internal/domain/post"
)

// Collection is the store collection holding blog posts.
const Collection = "posts"

// store is the consumer interface for posts (ISP).
type store interface {
	Get(ctx context.Context, collection, id string) (docstore.Record, error)
	Exists(ctx context.Context, collection, id string) (bool, error)
	Create(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	Update(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
	Delete(ctx context.Context, collection, id string) (bool, error)
	RunQuery(ctx context.Context, q docstore.QueryRequest) ([]docstore.Record, error)
}

// Repo implements usecase/blog.Repository.
type Repo struct {
	store store
}

// New creates a post repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new post keyed by its slug. The existence check is only a
// fast path; the store's create-if-absent decides the race.
func (r *Repo) Create(ctx context.Context, p dompost.Post) (dompost.Post, error) {
	exists, err := r.store.Exists(ctx, Collection, p.Slug())
	if err != nil {
		return dompost.Post{}, fmt.Errorf("check slug: %w", err)
	}
	if exists {
		return dompost.Post{}, domain.Conflictf("a post with slug %q already exists", p.Slug())
	}

	rec, err := r.store.Create(ctx, Collection, p.Slug(), postToRecord(p))
	if err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return dompost.Post{}, domain.Conflictf("a post with slug %q already exists", p.Slug())
		}
		return dompost.Post{}, fmt.Errorf("create post: %w", err)
	}
	if rec == nil {
		return p, nil
	}
	return postFromRecord(rec), nil
}

// Get returns a post by slug.
func (r *Repo) Get(ctx context.Context, slug string) (dompost.Post, error) {
	rec, err := r.store.Get(ctx, Collection, slug)
	if err != nil {
		return dompost.Post{}, fmt.Errorf("get post: %w", err)
	}
	if rec == nil {
		return dompost.Post{}, domain.NotFoundf("post %q not found", slug)
	}
	return postFromRecord(rec), nil
}

// List returns the posts matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f dompost.ListFilter) ([]dompost.Post, error) {
	q := docstore.NewQuery(Collection)
	if f.Published != nil {
		q.Where(fieldPublished, docstore.Equal, *f.Published)
	}
	if f.Category != "" {
		q.Where(fieldCategory, docstore.Equal, f.Category)
	}
	if f.Tag != "" {
		q.Where(fieldTags, docstore.ArrayContains, f.Tag)
	}
	req, err := q.OrderBy(fieldCreatedAt, docstore.Descending).Build()
	if err != nil {
		return nil, fmt.Errorf("build post query: %w", err)
	}

	recs, err := r.store.RunQuery(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	posts := make([]dompost.Post, len(recs))
	for i, rec := range recs {
		posts[i] = postFromRecord(rec)
	}
	return posts, nil
}

// Update writes exactly the patched fields plus updatedAt.
func (r *Repo) Update(ctx context.Context, slug string, p *dompost.Patch, now time.Time) (dompost.Post, error) {
	fields := patchToRecord(p)
	fields[fieldUpdatedAt] = now.UTC()
	return r.update(ctx, slug, fields)
}

// SetViewCount stores a new view count.
func (r *Repo) SetViewCount(ctx context.Context, slug string, n int64) (dompost.Post, error) {
	return r.update(ctx, slug, docstore.Record{fieldViewCount: n})
}

// SetLikes replaces the liker list.
func (r *Repo) SetLikes(ctx context.Context, slug string, likes []string) (dompost.Post, error) {
	if likes == nil {
		likes = []string{}
	}
	return r.update(ctx, slug, docstore.Record{fieldLikes: likes})
}

func (r *Repo) update(ctx context.Context, slug string, fields docstore.Record) (dompost.Post, error) {
	rec, err := r.store.Update(ctx, Collection, slug, fields)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return dompost.Post{}, domain.NotFoundf("post %q not found", slug)
		}
		return dompost.Post{}, fmt.Errorf("update post: %w", err)
	}
	if rec == nil {
		return r.Get(ctx, slug)
	}
	return postFromRecord(rec), nil
}

// Delete removes a post. A missing post is ErrNotFound.
func (r *Repo) Delete(ctx context.Context, slug string) error {
	if _, err := r.Get(ctx, slug); err != nil {
		return err
	}
	if _, err := r.store.Delete(ctx, Collection, slug); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
