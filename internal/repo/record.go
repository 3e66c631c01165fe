// Package repo contains all database access logic for the Travel Log API.
// No business logic lives here — only SQL and type mapping. Both record
// kinds go through the same implementation; the kind selects the table and
// the date column.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkleiven/travel-log/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RecordRepo defines the persistence operations shared by both record kinds.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type RecordRepo interface {
	// Create inserts a new record of the given kind and returns the persisted
	// row (with DB-generated id and created_at populated).
	Create(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error)

	// GetByID retrieves a single record by its integer primary key.
	// Returns domain.ErrNotFound if no record with that ID exists for the kind.
	GetByID(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error)

	// List returns all records of the kind, newest created first.
	List(ctx context.Context, kind domain.Kind) ([]domain.Record, error)

	// Update overwrites the mutable fields of an existing record. id and
	// created_at never change. Returns domain.ErrNotFound if the ID is unknown.
	Update(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error)

	// Delete removes a record by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, kind domain.Kind, id int64) error
}

// pgRecordRepo is the Postgres implementation of RecordRepo.
type pgRecordRepo struct {
	db db
}

// NewRecordRepo constructs a RecordRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRecordRepo(db db) RecordRepo {
	return &pgRecordRepo{db: db}
}

// Create inserts a new row and returns the full persisted record.
func (r *pgRecordRepo) Create(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error) {
	// kind.Table and kind.DateColumn come from a closed enum, never from
	// user input, so building the statement with Sprintf is safe here.
	q := fmt.Sprintf(`
		INSERT INTO %[1]s (name, latitude, longitude, %[2]s, notes)
		VALUES (@name, @latitude, @longitude, @date, @notes)
		RETURNING id, name, latitude, longitude, %[2]s, notes, created_at`,
		kind.Table(), kind.DateColumn())

	args := pgx.NamedArgs{
		"name":      rec.Name,
		"latitude":  rec.Latitude,
		"longitude": rec.Longitude,
		"date":      rec.Date, // nil becomes NULL
		"notes":     rec.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Create(%s): %w", kind, err)
	}
	return result, nil
}

// GetByID retrieves a record by primary key.
func (r *pgRecordRepo) GetByID(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error) {
	q := fmt.Sprintf(`
		SELECT id, name, latitude, longitude, %s, notes, created_at
		FROM %s
		WHERE id = @id`,
		kind.DateColumn(), kind.Table())

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.GetByID(%s): %w", kind, err)
	}
	return result, nil
}

// List returns all records of the kind ordered by creation time descending.
// The id tiebreak keeps the order stable when rows share a timestamp.
func (r *pgRecordRepo) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	q := fmt.Sprintf(`
		SELECT id, name, latitude, longitude, %s, notes, created_at
		FROM %s
		ORDER BY created_at DESC, id DESC`,
		kind.DateColumn(), kind.Table())

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.List(%s): %w", kind, err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RecordRepo.List(%s): scan: %w", kind, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.List(%s): rows: %w", kind, err)
	}

	return records, nil
}

// Update overwrites the mutable fields of a record and returns the updated row.
func (r *pgRecordRepo) Update(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error) {
	q := fmt.Sprintf(`
		UPDATE %[1]s
		SET name      = @name,
		    latitude  = @latitude,
		    longitude = @longitude,
		    %[2]s     = @date,
		    notes     = @notes
		WHERE id = @id
		RETURNING id, name, latitude, longitude, %[2]s, notes, created_at`,
		kind.Table(), kind.DateColumn())

	args := pgx.NamedArgs{
		"id":        rec.ID,
		"name":      rec.Name,
		"latitude":  rec.Latitude,
		"longitude": rec.Longitude,
		"date":      rec.Date,
		"notes":     rec.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Update(%s): %w", kind, err)
	}
	return result, nil
}

// Delete removes a record by primary key.
func (r *pgRecordRepo) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = @id`, kind.Table())

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.RecordRepo.Delete(%s): %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RecordRepo.Delete(%s): %w", kind, domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanRecord to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord maps a single database row into a domain.Record.
// Date and Notes are nullable; scanning into *string pointers handles NULL.
func scanRecord(s scanner) (domain.Record, error) {
	var rec domain.Record
	err := s.Scan(&rec.ID, &rec.Name, &rec.Latitude, &rec.Longitude, &rec.Date, &rec.Notes, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, domain.ErrNotFound
		}
		return domain.Record{}, err
	}
	return rec, nil
}
