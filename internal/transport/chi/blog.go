package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/folio/internal/domain/post"
	bloguc "github.com/kailas-cloud/folio/internal/usecase/blog"
)

// ListPosts handles GET /api/blog.
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		page, limit   int
		category, tag string
		published     *bool
	)
	for _, b := range []struct {
		name string
		dest any
	}{
		{"page", &page},
		{"limit", &limit},
		{"category", &category},
		{"tag", &tag},
		{"published", &published},
	} {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			handleError(w, r, err, "Failed to fetch blog posts")
			return
		}
	}

	posts, meta, err := s.blog.List(r.Context(), bloguc.ListQuery{
		Filter: post.ListFilter{Category: category, Tag: tag, Published: published},
		Page:   page,
		Limit:  limit,
		Admin:  IsAdmin(r.Context()),
	})
	if err != nil {
		handleError(w, r, err, "Failed to fetch blog posts")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success:    true,
		Data:       postsToJSON(posts),
		Pagination: paginationToJSON(meta),
	})
}

// GetPost handles GET /api/blog/{slug}.
func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.blog.Get(r.Context(), gochi.URLParam(r, "slug"), IsAdmin(r.Context()))
	if err != nil {
		handleError(w, r, err, "Failed to fetch blog post")
		return
	}
	writeData(w, http.StatusOK, "", postToJSON(p))
}

// CreatePost handles POST /api/blog.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err, "Failed to create blog post")
		return
	}

	p, err := s.blog.Create(r.Context(), req.draft())
	if err != nil {
		handleError(w, r, err, "Failed to create blog post")
		return
	}
	writeData(w, http.StatusCreated, "Blog post created successfully", postToJSON(p))
}

// UpdatePost handles PUT and PATCH /api/blog/{slug}. Only the supplied
// fields change.
func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req updatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err, "Failed to update blog post")
		return
	}

	p, err := s.blog.Update(r.Context(), gochi.URLParam(r, "slug"), req.patch())
	if err != nil {
		handleError(w, r, err, "Failed to update blog post")
		return
	}
	writeData(w, http.StatusOK, "Blog post updated successfully", postToJSON(p))
}

// DeletePost handles DELETE /api/blog/{slug}.
func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.blog.Delete(r.Context(), gochi.URLParam(r, "slug")); err != nil {
		handleError(w, r, err, "Failed to delete blog post")
		return
	}
	writeData(w, http.StatusOK, "Blog post deleted successfully", nil)
}

// ViewPost handles POST /api/blog/{slug}/view.
func (s *Server) ViewPost(w http.ResponseWriter, r *http.Request) {
	n, err := s.blog.View(r.Context(), gochi.URLParam(r, "slug"))
	if err != nil {
		handleError(w, r, err, "Failed to record view")
		return
	}
	writeData(w, http.StatusOK, "", map[string]int64{"viewCount": n})
}

// LikePost handles POST /api/blog/{slug}/like. Without a userId in the body
// the caller is identified by IP.
func (s *Server) LikePost(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err, "Failed to update likes")
			return
		}
	}
	liker := req.UserID
	if liker == "" {
		liker = "ip:" + clientIP(r)
	}

	count, liked, err := s.blog.Like(r.Context(), gochi.URLParam(r, "slug"), liker)
	if err != nil {
		handleError(w, r, err, "Failed to update likes")
		return
	}
	writeData(w, http.StatusOK, "", map[string]any{"likes": count, "liked": liked})
}
