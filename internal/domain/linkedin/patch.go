package linkedin

import "github.com/kailas-cloud/folio/internal/domain"

// Patch is a partial item update. Nil fields are unchanged.
type Patch struct {
	ContentType *ContentType
	Title       *string
	Topic       *string
	Status      *Status
	PostContent *string
	Slides      *[]Slide
	SlideImages *[]string
	Hashtags    *[]string
}

// Empty reports whether no field is set.
func (p Patch) Empty() bool {
	return p.ContentType == nil && p.Title == nil && p.Topic == nil && p.Status == nil &&
		p.PostContent == nil && p.Slides == nil && p.SlideImages == nil && p.Hashtags == nil
}

// Apply merges the patch over current, re-validates the union rule and
// returns the normalized patch to store. Switching the content type clears
// the other variant's payload unless the patch sets it, and the returned
// patch then carries every field.
func (p Patch) Apply(current Item) (Patch, error) {
	if p.Empty() {
		return Patch{}, domain.Validationf("at least one field must be provided")
	}

	f := current.Fields()
	switching := p.ContentType != nil && *p.ContentType != f.ContentType
	if switching {
		f.ContentType = *p.ContentType
		switch f.ContentType {
		case TypeCarousel:
			f.PostContent = ""
		case TypePost:
			f.Slides = nil
			f.SlideImages = nil
		}
	}
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Topic != nil {
		f.Topic = *p.Topic
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.PostContent != nil {
		f.PostContent = *p.PostContent
	}
	if p.Slides != nil {
		f.Slides = *p.Slides
	}
	if p.SlideImages != nil {
		f.SlideImages = *p.SlideImages
	}
	if p.Hashtags != nil {
		f.Hashtags = *p.Hashtags
	}

	if err := f.normalize(); err != nil {
		return Patch{}, err
	}

	if switching {
		return fullPatch(f), nil
	}
	out := Patch{}
	if p.ContentType != nil {
		out.ContentType = &f.ContentType
	}
	if p.Title != nil {
		out.Title = &f.Title
	}
	if p.Topic != nil {
		out.Topic = &f.Topic
	}
	if p.Status != nil {
		out.Status = &f.Status
	}
	if p.PostContent != nil {
		out.PostContent = &f.PostContent
	}
	if p.Slides != nil {
		out.Slides = &f.Slides
	}
	if p.SlideImages != nil {
		out.SlideImages = &f.SlideImages
	}
	if p.Hashtags != nil {
		out.Hashtags = &f.Hashtags
	}
	return out, nil
}

func fullPatch(f Fields) Patch {
	return Patch{
		ContentType: &f.ContentType,
		Title:       &f.Title,
		Topic:       &f.Topic,
		Status:      &f.Status,
		PostContent: &f.PostContent,
		Slides:      &f.Slides,
		SlideImages: &f.SlideImages,
		Hashtags:    &f.Hashtags,
	}
}
