package post

import (
	"github.com/kailas-cloud/folio/internal/docstore"
	dompost "github.com/kailas-cloud/folio/internal/domain/post"
)

// Stored field names.
const (
	fieldTitle       = "title"
	fieldContent     = "content"
	fieldDescription = "description"
	fieldImage       = "image"
	fieldCategory    = "category"
	fieldAuthor      = "author"
	fieldTags        = "tags"
	fieldPublished   = "isPublished"
	fieldViewCount   = "viewCount"
	fieldLikes       = "likes"
	fieldCreatedAt   = "createdAt"
	fieldUpdatedAt   = "updatedAt"
	fieldScheduledAt = "scheduledAt"
)

// postToRecord converts a domain Post into store fields. The slug is the
// document id and is not repeated as a field.
func postToRecord(p dompost.Post) docstore.Record {
	rec := docstore.Record{
		fieldTitle:       p.Title(),
		fieldContent:     p.Content(),
		fieldDescription: p.Description(),
		fieldImage:       p.Image(),
		fieldCategory:    p.Category(),
		fieldAuthor:      p.Author(),
		fieldTags:        p.Tags(),
		fieldPublished:   p.Published(),
		fieldViewCount:   p.ViewCount(),
		fieldLikes:       p.Likes(),
		fieldCreatedAt:   p.CreatedAt(),
		fieldUpdatedAt:   p.UpdatedAt(),
	}
	if p.ScheduledAt() != nil {
		rec[fieldScheduledAt] = *p.ScheduledAt()
	}
	return rec
}

// postFromRecord hydrates a domain Post from a decoded record.
func postFromRecord(rec docstore.Record) dompost.Post {
	return dompost.Reconstruct(dompost.State{
		Slug:        rec.ID(),
		Title:       rec.String(fieldTitle),
		Content:     rec.String(fieldContent),
		Description: rec.String(fieldDescription),
		Image:       rec.String(fieldImage),
		Category:    rec.String(fieldCategory),
		Author:      rec.String(fieldAuthor),
		Tags:        rec.Strings(fieldTags),
		Published:   rec.Bool(fieldPublished),
		ViewCount:   rec.Int(fieldViewCount),
		Likes:       rec.Strings(fieldLikes),
		CreatedAt:   rec.Time(fieldCreatedAt),
		UpdatedAt:   rec.Time(fieldUpdatedAt),
		ScheduledAt: rec.TimePtr(fieldScheduledAt),
	})
}

// patchToRecord lists exactly the patched keys, so the update mask never
// touches anything else.
func patchToRecord(p *dompost.Patch) docstore.Record {
	rec := docstore.Record{}
	if p.Title != nil {
		rec[fieldTitle] = *p.Title
	}
	if p.Content != nil {
		rec[fieldContent] = *p.Content
	}
	if p.Description != nil {
		rec[fieldDescription] = *p.Description
	}
	if p.Image != nil {
		rec[fieldImage] = *p.Image
	}
	if p.Category != nil {
		rec[fieldCategory] = *p.Category
	}
	if p.Tags != nil {
		rec[fieldTags] = *p.Tags
	}
	if p.Published != nil {
		rec[fieldPublished] = *p.Published
	}
	if p.ScheduledAt != nil {
		rec[fieldScheduledAt] = *p.ScheduledAt
	}
	return rec
}
