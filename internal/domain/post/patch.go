package post

import (
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
)

// Patch is a partial post update. Nil fields are unchanged. The slug is
// never part of a patch, even when the title changes.
type Patch struct {
	Title       *string
	Content     *string
	Description *string
	Image       *string
	Category    *string
	Tags        *[]string
	Published   *bool
	ScheduledAt *time.Time
}

// Validate checks the supplied fields. At least one field must be set.
func (p *Patch) Validate() error {
	if p.Empty() {
		return domain.Validationf("at least one field must be provided")
	}
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return domain.Validationf("title cannot be empty")
		}
		if len(t) > MaxTitleLength {
			return domain.Validationf("title too long (max %d)", MaxTitleLength)
		}
		p.Title = &t
	}
	if p.Content != nil {
		if strings.TrimSpace(*p.Content) == "" {
			return domain.Validationf("content cannot be empty")
		}
		if len(*p.Content) > MaxContentSize {
			return domain.Validationf("content too large (max %d bytes)", MaxContentSize)
		}
	}
	if p.Description != nil && len(*p.Description) > MaxDescriptionLength {
		return domain.Validationf("description too long (max %d)", MaxDescriptionLength)
	}
	if p.Tags != nil {
		tags, err := normalizeTags(*p.Tags)
		if err != nil {
			return err
		}
		p.Tags = &tags
	}
	return nil
}

// Empty reports whether no field is set.
func (p *Patch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Description == nil && p.Image == nil &&
		p.Category == nil && p.Tags == nil && p.Published == nil && p.ScheduledAt == nil
}

// Publishes reports whether applying the patch to current makes it public.
func (p *Patch) Publishes(current Post) bool {
	return p.Published != nil && *p.Published && !current.Published()
}
