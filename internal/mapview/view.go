// Package mapview keeps a map surface and its sidebar in sync with the
// last-loaded server state. It owns the id → marker associations for both
// record kinds and the single cross-kind selection.
//
// All mutation happens on one logical thread of control (the UI event loop
// that drives it), so the package does no locking.
package mapview

import (
	"context"
	"fmt"

	"github.com/mkleiven/travel-log/internal/domain"
)

// Marker is the opaque handle a Surface hands back for a placed marker.
// The view never looks inside it; it only stores it and gives it back on
// removal and selection.
type Marker any

// Surface is the drawing side of the map: something that can place and
// remove visual markers. The Leaflet-style widget implements this; tests
// implement it with a recorder.
type Surface interface {
	AddMarker(kind domain.Kind, rec domain.Record) Marker
	RemoveMarker(m Marker)
}

// Lister is the slice of the API client the view needs.
type Lister interface {
	List(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
}

// association pairs a marker handle with the record snapshot it was built
// from. Snapshots are disposable; every reload replaces them wholesale.
type association struct {
	marker Marker
	record domain.Record
}

// Selection identifies the currently selected marker, if any.
type Selection struct {
	Kind   domain.Kind
	Record domain.Record
	Marker Marker
}

// View holds the currently loaded records for the active mode and the
// marker associations for both kinds.
type View struct {
	api     Lister
	surface Surface

	mode    domain.Kind
	records []domain.Record
	markers map[domain.Kind]map[int64]association

	selected *Selection
}

// New constructs a View starting in visited mode with nothing loaded.
// Call Reload (or SetMode) to populate it.
func New(api Lister, surface Surface) *View {
	return &View{
		api:     api,
		surface: surface,
		mode:    domain.KindVisited,
		markers: map[domain.Kind]map[int64]association{
			domain.KindVisited: {},
			domain.KindPlanned: {},
		},
	}
}

// Mode returns the active mode.
func (v *View) Mode() domain.Kind {
	return v.mode
}

// SetMode switches the active mode and reloads it from the server.
func (v *View) SetMode(ctx context.Context, mode domain.Kind) error {
	if !mode.Valid() {
		return fmt.Errorf("mapview: unknown mode %q", mode)
	}
	v.mode = mode
	return v.Reload(ctx)
}

// Reload fetches the full record set for the active mode and rebuilds that
// mode's marker associations: every existing association is removed first,
// then one marker is added per returned record. Clearing before adding means
// the map never shows duplicate markers for an id, though it may be briefly
// empty. The other mode's associations are untouched.
//
// Any selection is dropped, since the marker it pointed at may be gone.
func (v *View) Reload(ctx context.Context) error {
	records, err := v.api.List(ctx, v.mode)
	if err != nil {
		return fmt.Errorf("mapview: reload %s: %w", v.mode, err)
	}

	for id, a := range v.markers[v.mode] {
		v.surface.RemoveMarker(a.marker)
		delete(v.markers[v.mode], id)
	}

	for _, rec := range records {
		m := v.surface.AddMarker(v.mode, rec)
		v.markers[v.mode][rec.ID] = association{marker: m, record: rec}
	}

	v.records = records
	v.ClearSelection()
	return nil
}

// Records returns the records loaded by the last Reload, newest first.
func (v *View) Records() []domain.Record {
	return v.records
}

// Select marks the record's marker as selected, looking across both kinds.
// Selecting a new marker deselects the previous one. Returns false when no
// association exists for the id.
func (v *View) Select(kind domain.Kind, id int64) bool {
	a, ok := v.markers[kind][id]
	if !ok {
		return false
	}
	v.selected = &Selection{Kind: kind, Record: a.record, Marker: a.marker}
	return true
}

// Selected returns the current selection, or ok=false when nothing is selected.
func (v *View) Selected() (Selection, bool) {
	if v.selected == nil {
		return Selection{}, false
	}
	return *v.selected, true
}

// ClearSelection drops any current selection.
func (v *View) ClearSelection() {
	v.selected = nil
}

// MarkerFor returns the marker handle associated with a record id, if any.
func (v *View) MarkerFor(kind domain.Kind, id int64) (Marker, bool) {
	a, ok := v.markers[kind][id]
	if !ok {
		return nil, false
	}
	return a.marker, true
}
