package linkedin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
)

// Service handles LinkedIn content drafts.
type Service struct {
	repo Repository
	gen  Generator
	now  func() time.Time
}

// New creates a LinkedIn content service. gen may be nil when no LLM is
// configured; Generate then fails with ErrGenerationFailed.
func New(repo Repository, gen Generator) *Service {
	return &Service{repo: repo, gen: gen, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates and stores a new item.
func (s *Service) Create(ctx context.Context, f domli.Fields) (domli.Item, error) {
	it, err := domli.New(f, s.now())
	if err != nil {
		return domli.Item{}, err
	}
	created, err := s.repo.Create(ctx, it)
	if err != nil {
		return domli.Item{}, fmt.Errorf("create content: %w", err)
	}
	return created, nil
}

// Get returns a live item.
func (s *Service) Get(ctx context.Context, id string) (domli.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return domli.Item{}, fmt.Errorf("get content: %w", err)
	}
	return it, nil
}

// List returns live items, newest first.
func (s *Service) List(ctx context.Context, f domli.ListFilter) ([]domli.Item, error) {
	if f.ContentType != "" && !f.ContentType.Valid() {
		return nil, domain.Validationf("unknown contentType %q", f.ContentType)
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Validationf("unknown status %q", f.Status)
	}
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// Update merges a patch over the current item and stores the normalized
// result. The post/carousel rule is checked against the merged state.
func (s *Service) Update(ctx context.Context, id string, p domli.Patch) (domli.Item, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domli.Item{}, fmt.Errorf("get content: %w", err)
	}
	normalized, err := p.Apply(current)
	if err != nil {
		return domli.Item{}, err
	}
	updated, err := s.repo.Update(ctx, id, normalized, s.now())
	if err != nil {
		return domli.Item{}, fmt.Errorf("update content: %w", err)
	}
	return updated, nil
}

// Delete soft-deletes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id, s.now()); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// Generate asks the LLM for a draft and stores it.
func (s *Service) Generate(ctx context.Context, req domli.GenerateRequest) (domli.Item, error) {
	if err := req.Validate(); err != nil {
		return domli.Item{}, err
	}
	if s.gen == nil {
		return domli.Item{}, &domain.Error{Kind: domain.ErrGenerationFailed, Msg: "content generation is not configured"}
	}

	out, err := s.gen.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrGenerationFailed) {
			return domli.Item{}, err
		}
		return domli.Item{}, fmt.Errorf("generate content: %w: %w", domain.ErrGenerationFailed, err)
	}

	it, err := domli.New(out.Fields(req), s.now())
	if err != nil {
		// The model answered with something the domain rejects.
		return domli.Item{}, &domain.Error{
			Kind: domain.ErrGenerationFailed,
			Msg:  "generated content was invalid: " + domain.PublicMessage(err),
		}
	}
	created, err := s.repo.Create(ctx, it)
	if err != nil {
		return domli.Item{}, fmt.Errorf("store generated content: %w", err)
	}
	return created, nil
}
