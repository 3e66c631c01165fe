// Package domain contains the core data types for the Travel Log application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler, client, mapview, quickadd).
package domain

import "time"

// Kind identifies which of the two record collections a record belongs to.
// A record belongs to exactly one kind for its whole lifetime; there is no
// conversion operation between kinds.
type Kind string

const (
	// KindVisited is a place the user has been to.
	KindVisited Kind = "visited"
	// KindPlanned is a trip the user intends to take.
	KindPlanned Kind = "planned"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindVisited || k == KindPlanned
}

// Table returns the database table holding records of this kind.
func (k Kind) Table() string {
	if k == KindPlanned {
		return "trips"
	}
	return "locations"
}

// DateColumn returns the name of the kind-specific date column. The two
// kinds share a shape and differ only in what their date means: when a
// visited location was visited versus when a planned trip is scheduled.
func (k Kind) DateColumn() string {
	if k == KindPlanned {
		return "planned_date"
	}
	return "visited_date"
}

// Record is a single saved place, either visited or planned. The kind is
// carried alongside the record rather than inside it because all fields are
// structurally identical across kinds.
type Record struct {
	ID        int64
	Name      string
	Latitude  float64
	Longitude float64

	// Date is an ISO date string (YYYY-MM-DD) or nil when the user did not
	// supply one. Its wire name depends on the kind (visited_date or
	// planned_date). The value is stored as given; no format check is done.
	Date *string

	Notes     *string
	CreatedAt time.Time
}
