// Package handler implements the HTTP handlers for the Travel Log API.
// All handlers are methods on Server. Methods are split into files by
// concern (record.go, geocoding.go, health.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"

	"github.com/go-chi/chi/v5"

	"github.com/mkleiven/travel-log/internal/domain"
)

// RecordServicer defines the business operations the record handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type RecordServicer interface {
	Create(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error)
	GetByID(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error)
	List(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
	Update(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error)
	Delete(ctx context.Context, kind domain.Kind, id int64) error
}

// Geocoder defines the upstream lookup operations the geocoding proxy
// handlers depend on. Responses are raw JSON, passed through verbatim.
type Geocoder interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
	Reverse(ctx context.Context, lat, lng float64) (json.RawMessage, error)
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	records RecordServicer
	geo     Geocoder
}

// NewServer constructs the Server with all its dependencies.
func NewServer(records RecordServicer, geo Geocoder) *Server {
	return &Server{records: records, geo: geo}
}

// Routes builds the chi router for the full API surface. Both record kinds
// mount the same handler set; only the kind parameter differs.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Route("/locations", s.recordRoutes(domain.KindVisited))
		r.Route("/trips", s.recordRoutes(domain.KindPlanned))
		r.Route("/geocoding", func(r chi.Router) {
			r.Get("/search", s.geocodeSearch)
			r.Get("/reverse", s.geocodeReverse)
		})
	})
	return r
}

// recordRoutes returns the CRUD route set for one record kind.
func (s *Server) recordRoutes(kind domain.Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", s.listRecords(kind))
		r.Post("/", s.createRecord(kind))
		r.Get("/{id}", s.getRecord(kind))
		r.Put("/{id}", s.updateRecord(kind))
		r.Delete("/{id}", s.deleteRecord(kind))
	}
}
