package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkleiven/travel-log/internal/domain"
)

// errorResponse is the body of every non-2xx answer: {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeError writes an errorResponse with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondRecordError maps a service error onto the HTTP contract:
// 404 for a missing id, 400 for failed validation, 500 otherwise.
// Internal faults are logged for operators and reported generically.
func respondRecordError(w http.ResponseWriter, kind domain.Kind, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, kindNoun(kind)+" not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	default:
		slog.Error("record operation failed", "kind", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// kindNoun returns the capitalized resource noun used in user-facing messages.
func kindNoun(kind domain.Kind) string {
	if kind == domain.KindPlanned {
		return "Trip"
	}
	return "Location"
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation, e.g.
// "service.RecordService.Create: validation error: name is required" → "name is required".
func validationMessage(err error) string {
	msg := err.Error()
	if _, after, found := strings.Cut(msg, domain.ErrValidation.Error()+": "); found {
		return after
	}
	return msg
}
