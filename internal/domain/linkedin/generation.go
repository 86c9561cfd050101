package linkedin

import (
	"strings"

	"github.com/kailas-cloud/folio/internal/domain"
)

// Generation defaults.
const (
	DefaultSlideCount = 7
	MaxTopicLength    = 300
)

// GenerateRequest asks the LLM for a draft.
type GenerateRequest struct {
	ContentType ContentType
	Topic       string
	Tone        string
	Audience    string
	SlideCount  int // carousels only
}

// Validate normalizes the request and applies defaults.
func (r *GenerateRequest) Validate() error {
	if !r.ContentType.Valid() {
		return domain.Validationf("contentType must be %q or %q", TypePost, TypeCarousel)
	}
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		return domain.Validationf("topic is required")
	}
	if len(r.Topic) > MaxTopicLength {
		return domain.Validationf("topic too long (max %d)", MaxTopicLength)
	}
	if r.ContentType == TypeCarousel {
		if r.SlideCount == 0 {
			r.SlideCount = DefaultSlideCount
		}
		if r.SlideCount < 1 || r.SlideCount > MaxSlides {
			return domain.Validationf("slideCount must be between 1 and %d", MaxSlides)
		}
	}
	return nil
}

// Generated is the LLM answer before it becomes a stored draft.
type Generated struct {
	Title       string
	PostContent string
	Slides      []Slide
	Hashtags    []string
}

// Fields turns a generated answer into draft fields for the requested type.
func (g Generated) Fields(req GenerateRequest) Fields {
	f := Fields{
		ContentType: req.ContentType,
		Title:       g.Title,
		Topic:       req.Topic,
		Status:      StatusDraft,
		Hashtags:    g.Hashtags,
	}
	if strings.TrimSpace(f.Title) == "" {
		f.Title = req.Topic
	}
	if req.ContentType == TypeCarousel {
		f.Slides = g.Slides
	} else {
		f.PostContent = g.PostContent
	}
	return f
}
