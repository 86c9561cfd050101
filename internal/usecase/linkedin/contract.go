package linkedin

import (
	"context"
	"time"

	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
)

// Repository defines the storage contract for LinkedIn content.
type Repository interface {
	Create(ctx context.Context, it domli.Item) (domli.Item, error)
	Get(ctx context.Context, id string) (domli.Item, error)
	List(ctx context.Context, f domli.ListFilter) ([]domli.Item, error)
	Update(ctx context.Context, id string, p domli.Patch, now time.Time) (domli.Item, error)
	SoftDelete(ctx context.Context, id string, now time.Time) error
}

// Generator drafts content with an LLM.
type Generator interface {
	Generate(ctx context.Context, req domli.GenerateRequest) (domli.Generated, error)
}
