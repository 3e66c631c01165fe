// Package quickadd implements the short-lived interaction that turns a map
// click or a search-result pick into a saved record: capture coordinates,
// resolve a display name when none was supplied, present a pre-filled form,
// then save or cancel.
package quickadd

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkleiven/travel-log/internal/domain"
	"github.com/mkleiven/travel-log/internal/geocode"
)

// State is the flow's position in its lifecycle.
type State int

const (
	// StateIdle means no quick-add interaction is underway.
	StateIdle State = iota
	// StatePending holds captured coordinates (and possibly a name) before
	// the form is shown.
	StatePending
	// StateResolving means a name lookup is in flight.
	StateResolving
	// StatePresented means the form is open with the name field populated
	// (possibly empty, when resolution found nothing usable).
	StatePresented
)

// String returns the state name for logs and test failure messages.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateResolving:
		return "resolving"
	case StatePresented:
		return "presented"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// NameResolver resolves a display name for coordinates. geocode.Resolver
// implements it.
type NameResolver interface {
	LocationName(ctx context.Context, lat, lng float64) (string, error)
}

// Saver persists the record the user submits. The API client implements it.
type Saver interface {
	Create(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error)
}

// Form carries the user's final input from the presented form to Submit.
type Form struct {
	Name  string
	Date  *string
	Notes *string
}

// Flow is the single quick-add instance. Starting a new capture while one is
// underway overwrites it — the new click or pick simply wins. The token
// distinguishes the captures, so a name resolution that raced with an
// overwrite is discarded instead of populating the wrong form.
//
// Flow is driven from a single thread of control and does no locking.
type Flow struct {
	resolver NameResolver
	saver    Saver

	state State
	token uuid.UUID
	lat   float64
	lng   float64
	name  string
}

// New constructs an idle Flow.
func New(resolver NameResolver, saver Saver) *Flow {
	return &Flow{resolver: resolver, saver: saver, state: StateIdle}
}

// State returns the current flow state.
func (f *Flow) State() State {
	return f.state
}

// Coordinates returns the captured coordinates. Only meaningful outside Idle.
func (f *Flow) Coordinates() (lat, lng float64) {
	return f.lat, f.lng
}

// Name returns the name that will pre-fill the form: the search pick's name,
// the resolved name, or empty when resolution found nothing usable.
func (f *Flow) Name() string {
	return f.name
}

// BeginFromMapClick starts a capture from a map click: coordinates only,
// no name. Any interaction already underway is overwritten.
func (f *Flow) BeginFromMapClick(lat, lng float64) {
	f.begin(lat, lng, "")
}

// BeginFromSearch starts a capture from a search-result pick, which already
// carries a name, so no lookup will be needed.
func (f *Flow) BeginFromSearch(c geocode.Candidate) {
	f.begin(c.Latitude, c.Longitude, c.Name)
}

func (f *Flow) begin(lat, lng float64, name string) {
	f.state = StatePending
	f.token = uuid.New()
	f.lat = lat
	f.lng = lng
	f.name = name
}

// Present moves the flow to the presented form. With a name already captured
// it goes straight there; otherwise it resolves one first, making exactly
// one reverse lookup. A lookup failure or an unusable answer presents an
// empty, editable name rather than blocking the flow.
//
// If the capture was overwritten while the lookup was in flight, the stale
// result is dropped and the flow is left to the newer capture.
func (f *Flow) Present(ctx context.Context) error {
	if f.state != StatePending {
		return fmt.Errorf("quickadd: present from %s state", f.state)
	}

	if f.name != "" {
		f.state = StatePresented
		return nil
	}

	f.state = StateResolving
	token := f.token

	name, err := f.resolver.LocationName(ctx, f.lat, f.lng)
	if f.token != token {
		// A newer click or pick took over; this result belongs to the old one.
		return nil
	}
	if err != nil || name == geocode.UnknownLocation {
		name = ""
	}

	f.name = name
	f.state = StatePresented
	return nil
}

// Submit saves the presented form as a new record of the given kind and
// returns the flow to idle. It is only valid once the form is presented.
func (f *Flow) Submit(ctx context.Context, kind domain.Kind, form Form) (domain.Record, error) {
	if f.state != StatePresented {
		return domain.Record{}, fmt.Errorf("quickadd: submit from %s state", f.state)
	}

	rec := domain.Record{
		Name:      form.Name,
		Latitude:  f.lat,
		Longitude: f.lng,
		Date:      form.Date,
		Notes:     form.Notes,
	}

	created, err := f.saver.Create(ctx, kind, rec)
	if err != nil {
		// Stay presented so the user can correct the form and retry.
		return domain.Record{}, err
	}

	f.reset()
	return created, nil
}

// Cancel dismisses the interaction from any state.
func (f *Flow) Cancel() {
	f.reset()
}

func (f *Flow) reset() {
	f.state = StateIdle
	f.token = uuid.UUID{}
	f.lat = 0
	f.lng = 0
	f.name = ""
}
