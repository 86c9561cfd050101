package post

import (
	"slices"
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
)

// Input limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxContentSize       = 262144 // 256KB of markdown
	MaxTags              = 20
)

// Post is a blog post aggregate (immutable value object). The slug doubles
// as the store document id.
type Post struct {
	slug        string
	title       string
	content     string
	description string
	image       string
	category    string
	author      string
	tags        []string
	published   bool
	viewCount   int64
	likes       []string
	createdAt   time.Time
	updatedAt   time.Time
	scheduledAt *time.Time
}

// Draft is the caller-supplied part of a new post.
type Draft struct {
	Title       string
	Content     string
	Description string
	Image       string
	Category    string
	Author      string
	Tags        []string
	Published   bool
	ScheduledAt *time.Time
}

// New validates a draft and creates a Post. The slug is derived from the
// title once, here, and never changes afterwards.
func New(d Draft, now time.Time) (Post, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Post{}, domain.Validationf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Post{}, domain.Validationf("title too long (max %d)", MaxTitleLength)
	}
	if strings.TrimSpace(d.Content) == "" {
		return Post{}, domain.Validationf("content is required")
	}
	if len(d.Content) > MaxContentSize {
		return Post{}, domain.Validationf("content too large (max %d bytes)", MaxContentSize)
	}
	if len(d.Description) > MaxDescriptionLength {
		return Post{}, domain.Validationf("description too long (max %d)", MaxDescriptionLength)
	}
	tags, err := normalizeTags(d.Tags)
	if err != nil {
		return Post{}, err
	}

	slug := DeriveSlug(title)
	if slug == "" {
		return Post{}, domain.Validationf("title must contain at least one letter or digit")
	}

	now = now.UTC()
	return Post{
		slug:        slug,
		title:       title,
		content:     d.Content,
		description: strings.TrimSpace(d.Description),
		image:       strings.TrimSpace(d.Image),
		category:    strings.TrimSpace(d.Category),
		author:      strings.TrimSpace(d.Author),
		tags:        tags,
		published:   d.Published,
		likes:       []string{},
		createdAt:   now,
		updatedAt:   now,
		scheduledAt: d.ScheduledAt,
	}, nil
}

// State is the full stored form of a post, used for hydration.
type State struct {
	Slug        string
	Title       string
	Content     string
	Description string
	Image       string
	Category    string
	Author      string
	Tags        []string
	Published   bool
	ViewCount   int64
	Likes       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ScheduledAt *time.Time
}

// Reconstruct creates a Post without validation (storage hydration).
func Reconstruct(s State) Post {
	return Post{
		slug:        s.Slug,
		title:       s.Title,
		content:     s.Content,
		description: s.Description,
		image:       s.Image,
		category:    s.Category,
		author:      s.Author,
		tags:        slices.Clone(s.Tags),
		published:   s.Published,
		viewCount:   s.ViewCount,
		likes:       slices.Clone(s.Likes),
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
		scheduledAt: s.ScheduledAt,
	}
}

// Slug returns the post identifier.
func (p Post) Slug() string { return p.slug }

// Title returns the title.
func (p Post) Title() string { return p.title }

// Content returns the markdown body.
func (p Post) Content() string { return p.content }

// Description returns the summary line.
func (p Post) Description() string { return p.description }

// Image returns the cover image URL.
func (p Post) Image() string { return p.image }

// Category returns the category.
func (p Post) Category() string { return p.category }

// Author returns the author name.
func (p Post) Author() string { return p.author }

// Tags returns a copy of the tags.
func (p Post) Tags() []string { return slices.Clone(p.tags) }

// Published reports whether the post is visible to the public.
func (p Post) Published() bool { return p.published }

// ViewCount returns the number of recorded views.
func (p Post) ViewCount() int64 { return p.viewCount }

// Likes returns a copy of the liker ids.
func (p Post) Likes() []string { return slices.Clone(p.likes) }

// CreatedAt returns the creation time.
func (p Post) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last modification time.
func (p Post) UpdatedAt() time.Time { return p.updatedAt }

// ScheduledAt returns the planned publication time, if any.
func (p Post) ScheduledAt() *time.Time { return p.scheduledAt }

// LikedBy reports whether the liker id is in the likes list.
func (p Post) LikedBy(liker string) bool { return slices.Contains(p.likes, liker) }

// ToggleLike returns the likes list with liker added, or removed if present.
func (p Post) ToggleLike(liker string) (likes []string, liked bool) {
	if i := slices.Index(p.likes, liker); i >= 0 {
		return slices.Delete(slices.Clone(p.likes), i, i+1), false
	}
	return append(slices.Clone(p.likes), liker), true
}

func normalizeTags(in []string) ([]string, error) {
	if len(in) > MaxTags {
		return nil, domain.Validationf("too many tags (max %d)", MaxTags)
	}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
