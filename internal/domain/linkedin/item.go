package linkedin

import (
	"slices"
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
)

// ContentType discriminates single posts from carousels.
type ContentType string

// Content types.
const (
	TypePost     ContentType = "post"
	TypeCarousel ContentType = "carousel"
)

// Valid reports whether the content type is known.
func (t ContentType) Valid() bool { return t == TypePost || t == TypeCarousel }

// Status is the editorial state.
type Status string

// Statuses.
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether the status is known.
func (s Status) Valid() bool { return s == StatusDraft || s == StatusPublished }

// Limits.
const (
	MaxTitleLength   = 200
	MaxPostLength    = 3000 // LinkedIn post character limit
	MaxSlides        = 20
	MaxHashtags      = 30
	MaxSlideHeading  = 120
	MaxSlideBodySize = 1000
)

// Slide is one carousel page.
type Slide struct {
	Number  int
	Heading string
	Body    string
}

// Item is a LinkedIn content draft (immutable value object): either a
// single post with PostContent or a carousel with Slides.
type Item struct {
	id          string
	contentType ContentType
	title       string
	topic       string
	status      Status
	postContent string
	slides      []Slide
	slideImages []string
	hashtags    []string
	createdAt   time.Time
	updatedAt   time.Time
	deleted     bool
}

// Fields is the editable part of an item.
type Fields struct {
	ContentType ContentType
	Title       string
	Topic       string
	Status      Status
	PostContent string
	Slides      []Slide
	SlideImages []string
	Hashtags    []string
}

// New validates fields and creates an Item. The id is assigned by the store.
func New(f Fields, now time.Time) (Item, error) {
	if err := f.normalize(); err != nil {
		return Item{}, err
	}
	now = now.UTC()
	return Item{
		contentType: f.ContentType,
		title:       f.Title,
		topic:       f.Topic,
		status:      f.Status,
		postContent: f.PostContent,
		slides:      f.Slides,
		slideImages: f.SlideImages,
		hashtags:    f.Hashtags,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// normalize trims input, fills defaults and enforces the union rule: posts
// carry PostContent and no slides, carousels carry at least one slide.
func (f *Fields) normalize() error {
	if !f.ContentType.Valid() {
		return domain.Validationf("contentType must be %q or %q", TypePost, TypeCarousel)
	}
	if f.Status == "" {
		f.Status = StatusDraft
	}
	if !f.Status.Valid() {
		return domain.Validationf("status must be %q or %q", StatusDraft, StatusPublished)
	}
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return domain.Validationf("title is required")
	}
	if len(f.Title) > MaxTitleLength {
		return domain.Validationf("title too long (max %d)", MaxTitleLength)
	}
	f.Topic = strings.TrimSpace(f.Topic)

	switch f.ContentType {
	case TypePost:
		f.PostContent = strings.TrimSpace(f.PostContent)
		if f.PostContent == "" {
			return domain.Validationf("postContent is required for posts")
		}
		if len(f.PostContent) > MaxPostLength {
			return domain.Validationf("postContent too long (max %d)", MaxPostLength)
		}
		if len(f.Slides) > 0 {
			return domain.Validationf("slides are only allowed on carousels")
		}
	case TypeCarousel:
		if len(f.Slides) == 0 {
			return domain.Validationf("carousels need at least one slide")
		}
		if len(f.Slides) > MaxSlides {
			return domain.Validationf("too many slides (max %d)", MaxSlides)
		}
		slides, err := normalizeSlides(f.Slides)
		if err != nil {
			return err
		}
		f.Slides = slides
	}

	if len(f.Hashtags) > MaxHashtags {
		return domain.Validationf("too many hashtags (max %d)", MaxHashtags)
	}
	f.Hashtags = normalizeHashtags(f.Hashtags)
	f.SlideImages = slices.DeleteFunc(slices.Clone(f.SlideImages), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	return nil
}

// normalizeSlides checks every slide and renumbers them 1..n in the given order.
func normalizeSlides(in []Slide) ([]Slide, error) {
	out := make([]Slide, len(in))
	for i, s := range in {
		s.Heading = strings.TrimSpace(s.Heading)
		s.Body = strings.TrimSpace(s.Body)
		if s.Heading == "" && s.Body == "" {
			return nil, domain.Validationf("slide %d is empty", i+1)
		}
		if len(s.Heading) > MaxSlideHeading {
			return nil, domain.Validationf("slide %d heading too long (max %d)", i+1, MaxSlideHeading)
		}
		if len(s.Body) > MaxSlideBodySize {
			return nil, domain.Validationf("slide %d body too long (max %d)", i+1, MaxSlideBodySize)
		}
		s.Number = i + 1
		out[i] = s
	}
	return out, nil
}

// normalizeHashtags strips leading '#', drops blanks and duplicates.
func normalizeHashtags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		h = strings.TrimLeft(strings.TrimSpace(h), "#")
		if h == "" || slices.Contains(out, h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// State is the full stored form of an item, used for hydration.
type State struct {
	ID        string
	Fields    Fields
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(s State) Item {
	return Item{
		id:          s.ID,
		contentType: s.Fields.ContentType,
		title:       s.Fields.Title,
		topic:       s.Fields.Topic,
		status:      s.Fields.Status,
		postContent: s.Fields.PostContent,
		slides:      slices.Clone(s.Fields.Slides),
		slideImages: slices.Clone(s.Fields.SlideImages),
		hashtags:    slices.Clone(s.Fields.Hashtags),
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
		deleted:     s.Deleted,
	}
}

// WithID returns a copy carrying the store-assigned id.
func (it Item) WithID(id string) Item {
	it.id = id
	return it
}

// ID returns the store document id.
func (it Item) ID() string { return it.id }

// ContentType returns the union discriminator.
func (it Item) ContentType() ContentType { return it.contentType }

// Title returns the title.
func (it Item) Title() string { return it.title }

// Topic returns the topic.
func (it Item) Topic() string { return it.topic }

// Status returns the editorial state.
func (it Item) Status() Status { return it.status }

// PostContent returns the post text (posts only).
func (it Item) PostContent() string { return it.postContent }

// Slides returns a copy of the carousel slides.
func (it Item) Slides() []Slide { return slices.Clone(it.slides) }

// SlideImages returns a copy of the rendered slide image URLs.
func (it Item) SlideImages() []string { return slices.Clone(it.slideImages) }

// Hashtags returns a copy of the hashtags (without '#').
func (it Item) Hashtags() []string { return slices.Clone(it.hashtags) }

// CreatedAt returns the creation time.
func (it Item) CreatedAt() time.Time { return it.createdAt }

// UpdatedAt returns the last modification time.
func (it Item) UpdatedAt() time.Time { return it.updatedAt }

// Deleted reports whether the item is soft-deleted.
func (it Item) Deleted() bool { return it.deleted }

// Fields returns the editable part of the item.
func (it Item) Fields() Fields {
	return Fields{
		ContentType: it.contentType,
		Title:       it.title,
		Topic:       it.topic,
		Status:      it.status,
		PostContent: it.postContent,
		Slides:      it.Slides(),
		SlideImages: it.SlideImages(),
		Hashtags:    it.Hashtags(),
	}
}
