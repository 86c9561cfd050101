package linkedin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
)

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newService(repo *mockRepo, gen Generator) *Service {
	return New(repo, gen).WithClock(func() time.Time { return testNow })
}

func existingPost(id string) domli.Item {
	return domli.Reconstruct(domli.State{
		ID: id,
		Fields: domli.Fields{
			ContentType: domli.TypePost, Title: "T", Status: domli.StatusDraft, PostContent: "body",
		},
	})
}

func TestCreate_UnionRule(t *testing.T) {
	svc := newService(&mockRepo{}, nil)
	_, err := svc.Create(context.Background(), domli.Fields{ContentType: domli.TypeCarousel, Title: "No slides"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	it, err := svc.Create(context.Background(), domli.Fields{ContentType: domli.TypePost, Title: "P", PostContent: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if it.ID() != "new-id" || it.Status() != domli.StatusDraft {
		t.Errorf("item = %+v", it)
	}
}

func TestList_RejectsUnknownFilter(t *testing.T) {
	svc := newService(&mockRepo{}, nil)
	if _, err := svc.List(context.Background(), domli.ListFilter{Status: "archived"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdate_SwitchToCarouselSendsFullPatch(t *testing.T) {
	var got domli.Patch
	repo := &mockRepo{
		getFn: func(_ context.Context, id string) (domli.Item, error) { return existingPost(id), nil },
		updateFn: func(_ context.Context, id string, p domli.Patch, _ time.Time) (domli.Item, error) {
			got = p
			return domli.Item{}, nil
		},
	}
	ct := domli.TypeCarousel
	slides := []domli.Slide{{Heading: "One"}}
	_, err := newService(repo, nil).Update(context.Background(), "x", domli.Patch{ContentType: &ct, Slides: &slides})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.PostContent == nil || *got.PostContent != "" {
		t.Errorf("post content must be cleared, got %v", got.PostContent)
	}
	if got.Slides == nil || len(*got.Slides) != 1 || (*got.Slides)[0].Number != 1 {
		t.Errorf("slides = %v", got.Slides)
	}
}

func TestUpdate_InvalidMergedState(t *testing.T) {
	repo := &mockRepo{
		getFn: func(_ context.Context, id string) (domli.Item, error) { return existingPost(id), nil },
		updateFn: func(context.Context, string, domli.Patch, time.Time) (domli.Item, error) {
			t.Error("invalid patch must not be stored")
			return domli.Item{}, nil
		},
	}
	empty := ""
	_, err := newService(repo, nil).Update(context.Background(), "x", domli.Patch{PostContent: &empty})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	title := "t"
	_, err := newService(&mockRepo{}, nil).Update(context.Background(), "gone", domli.Patch{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	var gotNow time.Time
	repo := &mockRepo{softDeleteFn: func(_ context.Context, _ string, now time.Time) error {
		gotNow = now
		return nil
	}}
	if err := newService(repo, nil).Delete(context.Background(), "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !gotNow.Equal(testNow) {
		t.Errorf("now = %v", gotNow)
	}
}

func TestGenerate_StoresDraft(t *testing.T) {
	gen := &mockGenerator{out: domli.Generated{
		Title:    "Five Go tips",
		Slides:   []domli.Slide{{Heading: "Tip 1", Body: "Use contexts"}, {Heading: "Tip 2"}},
		Hashtags: []string{"#go", "go"},
	}}
	var stored domli.Item
	repo := &mockRepo{createFn: func(_ context.Context, it domli.Item) (domli.Item, error) {
		stored = it
		return it.WithID("gen-1"), nil
	}}

	it, err := newService(repo, gen).Generate(context.Background(),
		domli.GenerateRequest{ContentType: domli.TypeCarousel, Topic: " Go tips "})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.got.SlideCount != domli.DefaultSlideCount || gen.got.Topic != "Go tips" {
		t.Errorf("request = %+v", gen.got)
	}
	if it.ID() != "gen-1" || stored.Status() != domli.StatusDraft || stored.Topic() != "Go tips" {
		t.Errorf("stored = %+v", stored)
	}
	if tags := stored.Hashtags(); len(tags) != 1 || tags[0] != "go" {
		t.Errorf("hashtags = %v", tags)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	gen := &mockGenerator{err: errors.New("upstream 503")}
	_, err := newService(&mockRepo{}, gen).Generate(context.Background(),
		domli.GenerateRequest{ContentType: domli.TypePost, Topic: "x"})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerate_InvalidModelOutput(t *testing.T) {
	gen := &mockGenerator{out: domli.Generated{Title: "T"}} // post without content
	repo := &mockRepo{createFn: func(context.Context, domli.Item) (domli.Item, error) {
		t.Error("invalid output must not be stored")
		return domli.Item{}, nil
	}}
	_, err := newService(repo, gen).Generate(context.Background(),
		domli.GenerateRequest{ContentType: domli.TypePost, Topic: "x"})
	if !errors.Is(err, domain.ErrGenerationFailed) || errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrGenerationFailed only, got %v", err)
	}
}

func TestGenerate_NotConfigured(t *testing.T) {
	_, err := newService(&mockRepo{}, nil).Generate(context.Background(),
		domli.GenerateRequest{ContentType: domli.TypePost, Topic: "x"})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerate_ValidatesRequest(t *testing.T) {
	gen := &mockGenerator{}
	_, err := newService(&mockRepo{}, gen).Generate(context.Background(), domli.GenerateRequest{ContentType: domli.TypePost})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
