package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mkleiven/travel-log/internal/domain"
)

// geocodeSearch handles GET /api/geocoding/search?q=<text>.
// The upstream response is passed through verbatim, so the browser never
// talks to the third-party service directly (no cross-origin trouble, and
// the service identity header is set in exactly one place).
func (s *Server) geocodeSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, `Query parameter "q" is required`)
		return
	}

	raw, err := s.geo.Search(r.Context(), query)
	if err != nil {
		respondGeocodeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// geocodeReverse handles GET /api/geocoding/reverse?lat=<f>&lng=<f>.
func (s *Server) geocodeReverse(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		writeError(w, http.StatusBadRequest, "Latitude and longitude are required")
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "Latitude and longitude must be numbers")
		return
	}

	raw, err := s.geo.Reverse(r.Context(), lat, lng)
	if err != nil {
		respondGeocodeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// respondGeocodeError maps geocode client failures onto the HTTP contract.
// Upstream and parse failures carry a user-facing hint in their message
// (rate limiting, timeout, connectivity), so the message is forwarded.
func respondGeocodeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrParse):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		slog.Error("geocoding proxy failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
