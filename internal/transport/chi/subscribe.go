package chi

import (
	"fmt"
	"net/http"

	"github.com/kailas-cloud/folio/internal/usecase/formguard"
	subscribeuc "github.com/kailas-cloud/folio/internal/usecase/subscribe"
)

const subscribedMessage = "Successfully subscribed to the newsletter!"

// Subscribe handles POST /api/subscribe. Submissions flagged as bots get the
// same answer as real ones.
func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err, "Failed to subscribe")
		return
	}

	_, err := s.subscribe.Subscribe(r.Context(), subscribeuc.Request{
		Email:       req.Email,
		Name:        req.Name,
		Source:      req.Source,
		Preferences: req.Preferences,
		Guard: formguard.Submission{
			ClientIP:  clientIP(r),
			Honeypot:  req.Website,
			StartedAt: req.FormStartedAt.Time(),
		},
	})
	if err != nil {
		handleError(w, r, err, "Failed to subscribe")
		return
	}
	writeData(w, http.StatusOK, subscribedMessage, nil)
}

// Unsubscribe handles DELETE /api/subscribe?email=.
func (s *Server) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var email string
	if err := bindQuery(r, "email", &email); err != nil {
		handleError(w, r, err, "Failed to unsubscribe")
		return
	}
	if err := s.subscribe.Unsubscribe(r.Context(), email); err != nil {
		handleError(w, r, err, "Failed to unsubscribe")
		return
	}
	writeData(w, http.StatusOK, "Successfully unsubscribed", nil)
}

// ListSubscribers handles GET /api/subscribers.
func (s *Server) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	var page, limit int
	if err := bindQuery(r, "page", &page); err != nil {
		handleError(w, r, err, "Failed to fetch subscribers")
		return
	}
	if err := bindQuery(r, "limit", &limit); err != nil {
		handleError(w, r, err, "Failed to fetch subscribers")
		return
	}

	subs, meta, err := s.subscribe.List(r.Context(), page, limit)
	if err != nil {
		handleError(w, r, err, "Failed to fetch subscribers")
		return
	}
	out := make([]subscriberJSON, len(subs))
	for i, sub := range subs {
		out[i] = subscriberToJSON(sub)
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out, Pagination: paginationToJSON(meta)})
}

// SendNewsletter handles POST /api/newsletter/send. The broadcast runs to
// completion even if the caller disconnects.
func (s *Server) SendNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err, "Failed to send newsletter")
		return
	}

	report, err := s.newsletter.Send(r.Context(), req.Subject, req.Content)
	if err != nil {
		handleError(w, r, err, "Failed to send newsletter")
		return
	}
	msg := fmt.Sprintf("Newsletter sent to %d of %d subscribers", report.SuccessCount, report.Total)
	writeData(w, http.StatusOK, msg, reportToJSON(report))
}
