package linkedin

import (
	"github.com/kailas-cloud/folio/internal/docstore"
	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
)

const (
	fieldContentType = "contentType"
	fieldTitle       = "title"
	fieldTopic       = "topic"
	fieldStatus      = "status"
	fieldPostContent = "postContent"
	fieldSlides      = "slides"
	fieldSlideImages = "slideImages"
	fieldHashtags    = "hashtags"
	fieldCreatedAt   = "createdAt"
	fieldUpdatedAt   = "updatedAt"
	fieldDeleted     = "isDeleted"

	slideNumber  = "slideNumber"
	slideHeading = "heading"
	slideBody    = "body"
)

func slidesToValue(slides []domli.Slide) []any {
	out := make([]any, len(slides))
	for i, s := range slides {
		out[i] = map[string]any{
			slideNumber:  int64(s.Number),
			slideHeading: s.Heading,
			slideBody:    s.Body,
		}
	}
	return out
}

func slidesFromRecord(rec docstore.Record) []domli.Slide {
	raw := rec.Records(fieldSlides)
	if len(raw) == 0 {
		return nil
	}
	out := make([]domli.Slide, len(raw))
	for i, s := range raw {
		out[i] = domli.Slide{
			Number:  int(s.Int(slideNumber)),
			Heading: s.String(slideHeading),
			Body:    s.String(slideBody),
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func itemToRecord(it domli.Item) docstore.Record {
	rec := docstore.Record{
		fieldContentType: string(it.ContentType()),
		fieldTitle:       it.Title(),
		fieldTopic:       it.Topic(),
		fieldStatus:      string(it.Status()),
		fieldHashtags:    nonNil(it.Hashtags()),
		fieldCreatedAt:   it.CreatedAt(),
		fieldUpdatedAt:   it.UpdatedAt(),
		fieldDeleted:     it.Deleted(),
	}
	switch it.ContentType() {
	case domli.TypePost:
		rec[fieldPostContent] = it.PostContent()
	case domli.TypeCarousel:
		rec[fieldSlides] = slidesToValue(it.Slides())
		rec[fieldSlideImages] = nonNil(it.SlideImages())
	}
	return rec
}

func itemFromRecord(rec docstore.Record) domli.Item {
	return domli.Reconstruct(domli.State{
		ID: rec.ID(),
		Fields: domli.Fields{
			ContentType: domli.ContentType(rec.String(fieldContentType)),
			Title:       rec.String(fieldTitle),
			Topic:       rec.String(fieldTopic),
			Status:      domli.Status(rec.String(fieldStatus)),
			PostContent: rec.String(fieldPostContent),
			Slides:      slidesFromRecord(rec),
			SlideImages: rec.Strings(fieldSlideImages),
			Hashtags:    rec.Strings(fieldHashtags),
		},
		CreatedAt: rec.Time(fieldCreatedAt),
		UpdatedAt: rec.Time(fieldUpdatedAt),
		Deleted:   rec.Bool(fieldDeleted),
	})
}

// patchToRecord lists exactly the patched keys.
func patchToRecord(p domli.Patch) docstore.Record {
	rec := docstore.Record{}
	if p.ContentType != nil {
		rec[fieldContentType] = string(*p.ContentType)
	}
	if p.Title != nil {
		rec[fieldTitle] = *p.Title
	}
	if p.Topic != nil {
		rec[fieldTopic] = *p.Topic
	}
	if p.Status != nil {
		rec[fieldStatus] = string(*p.Status)
	}
	if p.PostContent != nil {
		rec[fieldPostContent] = *p.PostContent
	}
	if p.Slides != nil {
		rec[fieldSlides] = slidesToValue(*p.Slides)
	}
	if p.SlideImages != nil {
		rec[fieldSlideImages] = nonNil(*p.SlideImages)
	}
	if p.Hashtags != nil {
		rec[fieldHashtags] = nonNil(*p.Hashtags)
	}
	return rec
}
