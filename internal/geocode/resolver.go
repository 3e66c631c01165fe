package geocode

import (
	"context"
	"fmt"
)

// ReverseLookuper is the slice of the API client the resolver needs.
type ReverseLookuper interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (Place, error)
}

// Resolver turns coordinates into display names via reverse lookup,
// remembering previous answers. The cache key rounds coordinates to four
// decimals (~11 m), so repeated clicks in the same spot cost one lookup.
//
// Resolver is not safe for concurrent use; all calls are expected on the
// single thread of control that drives the UI.
type Resolver struct {
	reverse ReverseLookuper
	cache   map[string]string
}

// NewResolver constructs a Resolver on top of the given reverse lookup.
func NewResolver(reverse ReverseLookuper) *Resolver {
	return &Resolver{
		reverse: reverse,
		cache:   make(map[string]string),
	}
}

// LocationName resolves a display name for the coordinates. A lookup that
// succeeds but yields nothing usable returns UnknownLocation with nil error;
// only transport-level failures surface as errors.
func (r *Resolver) LocationName(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("%.4f_%.4f", lat, lng)
	if name, ok := r.cache[key]; ok {
		return name, nil
	}

	place, err := r.reverse.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return "", err
	}

	name := LocationName(place)
	if name != UnknownLocation {
		r.cache[key] = name
	}
	return name, nil
}
