// Package service contains the business logic for the Travel Log API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkleiven/travel-log/internal/domain"
	"github.com/mkleiven/travel-log/internal/repo"
)

// RecordService implements business logic for both record kinds. The kinds
// are symmetric, so a single implementation parameterized by kind replaces
// two copies of the same CRUD logic.
type RecordService struct {
	repo repo.RecordRepo
}

// NewRecordService constructs a RecordService backed by the provided RecordRepo.
func NewRecordService(r repo.RecordRepo) *RecordService {
	return &RecordService{repo: r}
}

// Create validates and persists a new record.
// Returns domain.ErrValidation if the name is missing.
func (s *RecordService) Create(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error) {
	if err := validateRecord(rec); err != nil {
		return domain.Record{}, err
	}
	result, err := s.repo.Create(ctx, kind, rec)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single record by ID.
// Returns domain.ErrNotFound if no record with that ID exists for the kind.
func (s *RecordService) GetByID(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error) {
	result, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all records of the kind, newest created first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RecordService) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	records, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("service.RecordService.List: %w", err)
	}
	if records == nil {
		return []domain.Record{}, nil
	}
	return records, nil
}

// Update validates and persists changes to an existing record. The update is
// a full replace of the mutable fields, not a partial patch.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// record does not exist.
func (s *RecordService) Update(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error) {
	if err := validateRecord(rec); err != nil {
		return domain.Record{}, err
	}
	result, err := s.repo.Update(ctx, kind, rec)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a record by ID.
// Returns domain.ErrNotFound if the record does not exist.
func (s *RecordService) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("service.RecordService.Delete: %w", err)
	}
	return nil
}

// validateRecord enforces the rules common to Create and Update.
// Only presence is checked: no coordinate range check and no name length
// limit, preserving the permissive behavior of the stored data set.
// Coordinate presence is enforced at the HTTP decode layer, where "absent"
// and "zero" are still distinguishable.
func validateRecord(rec domain.Record) error {
	if strings.TrimSpace(rec.Name) == "" {
		return fmt.Errorf("%w: Name, latitude, and longitude are required", domain.ErrValidation)
	}
	return nil
}
