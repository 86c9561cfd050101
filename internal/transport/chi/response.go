package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/logger"
)

// maxBodyBytes caps request bodies; post content is the largest payload.
const maxBodyBytes = 1 << 20

// envelope is the body of every API response.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       any             `json:"data,omitempty"`
	Pagination *paginationJSON `json:"pagination,omitempty"`
}

type paginationJSON struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func paginationToJSON(p domain.Pagination) *paginationJSON {
	return &paginationJSON{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

var errorHandlers = []errorHandler{
	sentinelHandler(domain.ErrValidation, http.StatusBadRequest, "Invalid request"),
	sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"),
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "Not found"),
	sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, "Already exists"),
	sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, "Too many requests. Please try again later."),
	sentinelHandler(domain.ErrGenerationFailed, http.StatusBadGateway, "Content generation failed"),
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error. The caller-facing message of a *domain.Error wins over the default.
func sentinelHandler(sentinel error, status int, fallback string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := domain.PublicMessage(err)
		if msg == "" {
			msg = fallback
		}
		writeError(w, status, msg)
		return true
	}
}

// handleError maps err through the handler chain. Anything unmatched is an
// upstream failure: logged in full, answered with the generic op message.
func handleError(w http.ResponseWriter, r *http.Request, err error, opMessage string) {
	log := logger.FromContext(r.Context())
	for _, h := range errorHandlers {
		if h(w, err) {
			log.Debug("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.String("op", opMessage), zap.Error(err))
	writeError(w, http.StatusInternalServerError, opMessage)
}

// decodeJSON reads a JSON body into dst. Failures are validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Validationf("request body too large")
		}
		return domain.Validationf("invalid request body: %s", err.Error())
	}
	return nil
}
