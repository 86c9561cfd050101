package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"

	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
)

// ListLinkedIn handles GET /api/linkedin/content.
func (s *Server) ListLinkedIn(w http.ResponseWriter, r *http.Request) {
	var contentType, status string
	if err := bindQuery(r, "contentType", &contentType); err != nil {
		handleError(w, r, err, "Failed to fetch LinkedIn content")
		return
	}
	if err := bindQuery(r, "status", &status); err != nil {
		handleError(w, r, err, "Failed to fetch LinkedIn content")
		return
	}

	items, err := s.linkedin.List(r.Context(), domli.ListFilter{
		ContentType: domli.ContentType(contentType),
		Status:      domli.Status(status),
	})
	if err != nil {
		handleError(w, r, err, "Failed to fetch LinkedIn content")
		return
	}
	writeData(w, http.StatusOK, "", itemsToJSON(items))
}

// GetLinkedIn handles GET /api/linkedin/content/{id}.
func (s *Server) GetLinkedIn(w http.ResponseWriter, r *http.Request) {
	it, err := s.linkedin.Get(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err, "Failed to fetch LinkedIn content")
		return
	}
	writeData(w, http.StatusOK, "", itemToJSON(it))
}

// CreateLinkedIn handles POST /api/linkedin/content.
func (s *Server) CreateLinkedIn(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err, "Failed to create LinkedIn content")
		return
	}
	it, err := s.linkedin.Create(r.Context(), req.fields())
	if err != nil {
		handleError(w, r, err, "Failed to create LinkedIn content")
		return
	}
	writeData(w, http.StatusCreated, "LinkedIn content created", itemToJSON(it))
}

// UpdateLinkedIn handles PUT and PATCH /api/linkedin/content/{id}.
func (s *Server) UpdateLinkedIn(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err, "Failed to update LinkedIn content")
		return
	}
	it, err := s.linkedin.Update(r.Context(), gochi.URLParam(r, "id"), req.patch())
	if err != nil {
		handleError(w, r, err, "Failed to update LinkedIn content")
		return
	}
	writeData(w, http.StatusOK, "LinkedIn content updated", itemToJSON(it))
}

// DeleteLinkedIn handles DELETE /api/linkedin/content/{id} (soft delete).
func (s *Server) DeleteLinkedIn(w http.ResponseWriter, r *http.Request) {
	if err := s.linkedin.Delete(r.Context(), gochi.URLParam(r, "id")); err != nil {
		handleError(w, r, err, "Failed to delete LinkedIn content")
		return
	}
	writeData(w, http.StatusOK, "LinkedIn content deleted", nil)
}

// GenerateLinkedIn handles POST /api/linkedin/generate.
func (s *Server) GenerateLinkedIn(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err, "Failed to generate LinkedIn content")
		return
	}
	it, err := s.linkedin.Generate(r.Context(), req.request())
	if err != nil {
		handleError(w, r, err, "Failed to generate LinkedIn content")
		return
	}
	writeData(w, http.StatusCreated, "LinkedIn content generated", itemToJSON(it))
}
