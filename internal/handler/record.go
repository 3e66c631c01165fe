package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkleiven/travel-log/internal/domain"
)

// recordRequest is the body of create and update requests. Latitude and
// longitude are pointers so that an explicitly supplied 0 is distinguishable
// from an absent field — (0, 0) is a valid coordinate pair.
type recordRequest struct {
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	VisitedDate *string  `json:"visited_date"`
	PlannedDate *string  `json:"planned_date"`
	Notes       *string  `json:"notes"`
}

// date returns the kind-appropriate date field from the request body.
func (b recordRequest) date(kind domain.Kind) *string {
	if kind == domain.KindPlanned {
		return b.PlannedDate
	}
	return b.VisitedDate
}

// recordResponse is the wire shape of a record. Exactly one of VisitedDate
// and PlannedDate is ever populated, matching the record's kind.
type recordResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	VisitedDate *string   `json:"visited_date,omitempty"`
	PlannedDate *string   `json:"planned_date,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// messageResponse acknowledges a successful update or delete.
type messageResponse struct {
	Message string `json:"message"`
}

// listRecords handles GET /api/locations and GET /api/trips.
func (s *Server) listRecords(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.records.List(r.Context(), kind)
		if err != nil {
			respondRecordError(w, kind, err)
			return
		}

		out := make([]recordResponse, len(records))
		for i, rec := range records {
			out[i] = recordToResponse(kind, rec)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRecord handles GET /api/locations/{id} and GET /api/trips/{id}.
func (s *Server) getRecord(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := recordID(w, r, kind)
		if !ok {
			return
		}

		rec, err := s.records.GetByID(r.Context(), kind, id)
		if err != nil {
			respondRecordError(w, kind, err)
			return
		}
		writeJSON(w, http.StatusOK, recordToResponse(kind, rec))
	}
}

// createRecord handles POST /api/locations and POST /api/trips.
func (s *Server) createRecord(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := decodeRecord(w, r, kind)
		if !ok {
			return
		}

		created, err := s.records.Create(r.Context(), kind, rec)
		if err != nil {
			respondRecordError(w, kind, err)
			return
		}
		writeJSON(w, http.StatusOK, recordToResponse(kind, created))
	}
}

// updateRecord handles PUT /api/locations/{id} and PUT /api/trips/{id}.
// The update is a full replace of the mutable fields, not a partial patch.
func (s *Server) updateRecord(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := recordID(w, r, kind)
		if !ok {
			return
		}
		rec, ok := decodeRecord(w, r, kind)
		if !ok {
			return
		}
		rec.ID = id

		if _, err := s.records.Update(r.Context(), kind, rec); err != nil {
			respondRecordError(w, kind, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: kindNoun(kind) + " updated successfully"})
	}
}

// deleteRecord handles DELETE /api/locations/{id} and DELETE /api/trips/{id}.
func (s *Server) deleteRecord(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := recordID(w, r, kind)
		if !ok {
			return
		}

		if err := s.records.Delete(r.Context(), kind, id); err != nil {
			respondRecordError(w, kind, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: kindNoun(kind) + " deleted successfully"})
	}
}

// --- mapping helpers --------------------------------------------------------

// recordID parses the {id} path parameter. A non-numeric id cannot name any
// record, so it is reported as not found rather than a bad request.
func recordID(w http.ResponseWriter, r *http.Request, kind domain.Kind) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, kindNoun(kind)+" not found")
		return 0, false
	}
	return id, true
}

// decodeRecord reads and presence-checks a record body. Name emptiness is
// left to the service; coordinate absence must be caught here, before the
// pointer fields are collapsed into plain floats.
func decodeRecord(w http.ResponseWriter, r *http.Request, kind domain.Kind) (domain.Record, bool) {
	var body recordRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return domain.Record{}, false
	}

	if body.Latitude == nil || body.Longitude == nil {
		writeError(w, http.StatusBadRequest, "Name, latitude, and longitude are required")
		return domain.Record{}, false
	}

	return domain.Record{
		Name:      body.Name,
		Latitude:  *body.Latitude,
		Longitude: *body.Longitude,
		Date:      body.date(kind),
		Notes:     body.Notes,
	}, true
}

// recordToResponse converts a domain.Record into its wire shape, placing the
// date in the kind-specific field.
func recordToResponse(kind domain.Kind, rec domain.Record) recordResponse {
	resp := recordResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Notes:     rec.Notes,
		CreatedAt: rec.CreatedAt,
	}
	if kind == domain.KindPlanned {
		resp.PlannedDate = rec.Date
	} else {
		resp.VisitedDate = rec.Date
	}
	return resp
}
