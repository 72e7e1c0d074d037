package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
)

// Envelope is the body of every JSON response. Status mirrors the HTTP code.
type Envelope struct {
	Status     int              `json:"status"`
	Message    string           `json:"message"`
	Data       any              `json:"data"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondOK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{Status: status, Message: message, Data: data})
}

func respondList(w http.ResponseWriter, message string, data any, meta pagination.Meta) {
	writeJSON(w, http.StatusOK, Envelope{Status: http.StatusOK, Message: message, Data: data, Pagination: &meta})
}

// respondError writes err as an envelope. Internal errors are logged with
// their cause and answered with fallback.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	status := common.HTTPStatus(err)
	if fallback == "" {
		fallback = "Internal server error"
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", common.RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, Envelope{Status: status, Message: common.PublicMessage(err, fallback)})
}

func respondStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Status: status, Message: message})
}
