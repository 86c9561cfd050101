package chi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
	domnews "github.com/kailas-cloud/folio/internal/domain/newsletter"
	"github.com/kailas-cloud/folio/internal/domain/post"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
)

// formTime accepts either Unix milliseconds or an RFC 3339 string, the two
// shapes browsers send for a form start timestamp.
type formTime struct {
	t *time.Time
}

func (f *formTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			t := time.UnixMilli(ms)
			f.t = &t
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("formStartedAt: %w", err)
		}
		f.t = &t
		return nil
	}
	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("formStartedAt: %w", err)
	}
	t := time.UnixMilli(int64(ms))
	f.t = &t
	return nil
}

// Time returns the parsed value, nil when absent.
func (f formTime) Time() *time.Time { return f.t }

// --- blog ---

type postJSON struct {
	ID          string     `json:"id"`
	LegacyID    string     `json:"_id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	Author      string     `json:"author,omitempty"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	ViewCount   int64      `json:"viewCount"`
	Likes       []string   `json:"likes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

func postToJSON(p post.Post) postJSON {
	tags := p.Tags()
	if tags == nil {
		tags = []string{}
	}
	likes := p.Likes()
	if likes == nil {
		likes = []string{}
	}
	return postJSON{
		ID:          p.Slug(),
		LegacyID:    p.Slug(),
		Slug:        p.Slug(),
		Title:       p.Title(),
		Content:     p.Content(),
		Description: p.Description(),
		Image:       p.Image(),
		Category:    p.Category(),
		Author:      p.Author(),
		Tags:        tags,
		IsPublished: p.Published(),
		ViewCount:   p.ViewCount(),
		Likes:       likes,
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
		ScheduledAt: p.ScheduledAt(),
	}
}

func postsToJSON(ps []post.Post) []postJSON {
	out := make([]postJSON, len(ps))
	for i, p := range ps {
		out[i] = postToJSON(p)
	}
	return out
}

type createPostRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	Author      string     `json:"author"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (r createPostRequest) draft() post.Draft {
	return post.Draft{
		Title:       r.Title,
		Content:     r.Content,
		Description: r.Description,
		Image:       r.Image,
		Category:    r.Category,
		Author:      r.Author,
		Tags:        r.Tags,
		Published:   r.IsPublished,
		ScheduledAt: r.ScheduledAt,
	}
}

type updatePostRequest struct {
	Title       *string    `json:"title"`
	Content     *string    `json:"content"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	Category    *string    `json:"category"`
	Tags        *[]string  `json:"tags"`
	IsPublished *bool      `json:"isPublished"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (r updatePostRequest) patch() *post.Patch {
	return &post.Patch{
		Title:       r.Title,
		Content:     r.Content,
		Description: r.Description,
		Image:       r.Image,
		Category:    r.Category,
		Tags:        r.Tags,
		Published:   r.IsPublished,
		ScheduledAt: r.ScheduledAt,
	}
}

type likeRequest struct {
	UserID string `json:"userId"`
}

// --- subscribers ---

type subscribeRequest struct {
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Source        string          `json:"source"`
	Preferences   map[string]bool `json:"preferences"`
	Website       string          `json:"website"`
	FormStartedAt formTime        `json:"formStartedAt"`
}

type subscriberJSON struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name,omitempty"`
	Source       string          `json:"source,omitempty"`
	SubscribedAt time.Time       `json:"subscribedAt"`
	Preferences  map[string]bool `json:"preferences"`
}

func subscriberToJSON(s subscriber.Subscriber) subscriberJSON {
	return subscriberJSON{
		ID:           s.Email(),
		Email:        s.Email(),
		Name:         s.Name(),
		Source:       s.Source(),
		SubscribedAt: s.SubscribedAt(),
		Preferences:  s.Preferences(),
	}
}

// --- newsletter ---

type newsletterRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

type failureJSON struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type reportJSON struct {
	Total        int           `json:"total"`
	SuccessCount int           `json:"successCount"`
	FailedCount  int           `json:"failedCount"`
	Errors       []failureJSON `json:"errors"`
}

func reportToJSON(r domnews.Report) reportJSON {
	errs := make([]failureJSON, len(r.Errors))
	for i, f := range r.Errors {
		errs[i] = failureJSON{Email: f.Email, Error: f.Error}
	}
	return reportJSON{
		Total:        r.Total,
		SuccessCount: r.SuccessCount,
		FailedCount:  r.FailedCount,
		Errors:       errs,
	}
}

// --- linkedin ---

type slideJSON struct {
	SlideNumber int    `json:"slideNumber"`
	Heading     string `json:"heading"`
	Body        string `json:"body"`
}

type linkedinJSON struct {
	ID          string      `json:"id"`
	ContentType string      `json:"contentType"`
	Title       string      `json:"title"`
	Topic       string      `json:"topic"`
	Status      string      `json:"status"`
	PostContent string      `json:"postContent,omitempty"`
	Slides      []slideJSON `json:"slides,omitempty"`
	SlideImages []string    `json:"slideImages,omitempty"`
	Hashtags    []string    `json:"hashtags"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func itemToJSON(it domli.Item) linkedinJSON {
	hashtags := it.Hashtags()
	if hashtags == nil {
		hashtags = []string{}
	}
	return linkedinJSON{
		ID:          it.ID(),
		ContentType: string(it.ContentType()),
		Title:       it.Title(),
		Topic:       it.Topic(),
		Status:      string(it.Status()),
		PostContent: it.PostContent(),
		Slides:      slidesToJSON(it.Slides()),
		SlideImages: it.SlideImages(),
		Hashtags:    hashtags,
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func itemsToJSON(items []domli.Item) []linkedinJSON {
	out := make([]linkedinJSON, len(items))
	for i, it := range items {
		out[i] = itemToJSON(it)
	}
	return out
}

func slidesToJSON(ss []domli.Slide) []slideJSON {
	if len(ss) == 0 {
		return nil
	}
	out := make([]slideJSON, len(ss))
	for i, s := range ss {
		out[i] = slideJSON{SlideNumber: s.Number, Heading: s.Heading, Body: s.Body}
	}
	return out
}

func slidesFromJSON(ss []slideJSON) []domli.Slide {
	if ss == nil {
		return nil
	}
	out := make([]domli.Slide, len(ss))
	for i, s := range ss {
		out[i] = domli.Slide{Number: s.SlideNumber, Heading: s.Heading, Body: s.Body}
	}
	return out
}

type createItemRequest struct {
	ContentType string      `json:"contentType"`
	Title       string      `json:"title"`
	Topic       string      `json:"topic"`
	Status      string      `json:"status"`
	PostContent string      `json:"postContent"`
	Slides      []slideJSON `json:"slides"`
	SlideImages []string    `json:"slideImages"`
	Hashtags    []string    `json:"hashtags"`
}

func (r createItemRequest) fields() domli.Fields {
	return domli.Fields{
		ContentType: domli.ContentType(r.ContentType),
		Title:       r.Title,
		Topic:       r.Topic,
		Status:      domli.Status(r.Status),
		PostContent: r.PostContent,
		Slides:      slidesFromJSON(r.Slides),
		SlideImages: r.SlideImages,
		Hashtags:    r.Hashtags,
	}
}

type updateItemRequest struct {
	ContentType *string      `json:"contentType"`
	Title       *string      `json:"title"`
	Topic       *string      `json:"topic"`
	Status      *string      `json:"status"`
	PostContent *string      `json:"postContent"`
	Slides      *[]slideJSON `json:"slides"`
	SlideImages *[]string    `json:"slideImages"`
	Hashtags    *[]string    `json:"hashtags"`
}

func (r updateItemRequest) patch() domli.Patch {
	p := domli.Patch{
		Title:       r.Title,
		Topic:       r.Topic,
		PostContent: r.PostContent,
		SlideImages: r.SlideImages,
		Hashtags:    r.Hashtags,
	}
	if r.ContentType != nil {
		ct := domli.ContentType(*r.ContentType)
		p.ContentType = &ct
	}
	if r.Status != nil {
		st := domli.Status(*r.Status)
		p.Status = &st
	}
	if r.Slides != nil {
		slides := slidesFromJSON(*r.Slides)
		p.Slides = &slides
	}
	return p
}

type generateRequest struct {
	ContentType string `json:"contentType"`
	Topic       string `json:"topic"`
	Tone        string `json:"tone"`
	Audience    string `json:"audience"`
	SlideCount  int    `json:"slideCount"`
}

func (r generateRequest) request() domli.GenerateRequest {
	return domli.GenerateRequest{
		ContentType: domli.ContentType(r.ContentType),
		Topic:       r.Topic,
		Tone:        r.Tone,
		Audience:    r.Audience,
		SlideCount:  r.SlideCount,
	}
}

// --- contact ---

type contactRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Subject       string   `json:"subject"`
	Message       string   `json:"message"`
	Website       string   `json:"website"`
	FormStartedAt formTime `json:"formStartedAt"`
}
