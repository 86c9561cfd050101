package chi

import (
	"net/http"

	contactuc "github.com/kailas-cloud/folio/internal/usecase/contact"
	"github.com/kailas-cloud/folio/internal/usecase/formguard"
)

const contactMessage = "Thanks for reaching out! I'll get back to you soon."

// SubmitContact handles POST /api/contact. Suppressed submissions get the
// same answer as delivered ones.
func (s *Server) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err, "Failed to send message")
		return
	}

	_, _, err := s.contact.Submit(r.Context(), contactuc.Request{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Guard: formguard.Submission{
			ClientIP:  clientIP(r),
			Honeypot:  req.Website,
			StartedAt: req.FormStartedAt.Time(),
		},
	})
	if err != nil {
		handleError(w, r, err, "Failed to send message")
		return
	}
	writeData(w, http.StatusOK, contactMessage, nil)
}
