package quickadd_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkleiven/travel-log/internal/domain"
	"github.com/mkleiven/travel-log/internal/geocode"
	"github.com/mkleiven/travel-log/internal/quickadd"
)

// stubResolver counts lookups and lets a test hook run mid-resolution.
type stubResolver struct {
	calls  int
	name   string
	err    error
	during func()
}

func (s *stubResolver) LocationName(_ context.Context, _, _ float64) (string, error) {
	s.calls++
	if s.during != nil {
		s.during()
	}
	return s.name, s.err
}

var _ quickadd.NameResolver = (*stubResolver)(nil)

// stubSaver records the last Create call.
type stubSaver struct {
	calls int
	kind  domain.Kind
	rec   domain.Record
	err   error
}

func (s *stubSaver) Create(_ context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error) {
	s.calls++
	s.kind = kind
	s.rec = rec
	if s.err != nil {
		return domain.Record{}, s.err
	}
	rec.ID = 1
	return rec, nil
}

var _ quickadd.Saver = (*stubSaver)(nil)

// ---- map click path ---------------------------------------------------------

func TestFlow_MapClick_ResolvesNameOnce(t *testing.T) {
	resolver := &stubResolver{name: "Oslo, Norway"}
	flow := quickadd.New(resolver, &stubSaver{})

	flow.BeginFromMapClick(59.9139, 10.7522)
	assert.Equal(t, quickadd.StatePending, flow.State())

	require.NoError(t, flow.Present(context.Background()))

	assert.Equal(t, quickadd.StatePresented, flow.State())
	assert.Equal(t, "Oslo, Norway", flow.Name())
	assert.Equal(t, 1, resolver.calls)

	lat, lng := flow.Coordinates()
	assert.InDelta(t, 59.9139, lat, 1e-9)
	assert.InDelta(t, 10.7522, lng, 1e-9)
}

func TestFlow_MapClick_LookupFailurePresentsEmptyName(t *testing.T) {
	resolver := &stubResolver{err: fmt.Errorf("%w: geocoding request timed out", domain.ErrUpstream)}
	flow := quickadd.New(resolver, &stubSaver{})

	flow.BeginFromMapClick(1, 2)
	require.NoError(t, flow.Present(context.Background()))

	// The form still opens; the user types the name themselves.
	assert.Equal(t, quickadd.StatePresented, flow.State())
	assert.Empty(t, flow.Name())
}

func TestFlow_MapClick_UnknownLocationPresentsEmptyName(t *testing.T) {
	resolver := &stubResolver{name: geocode.UnknownLocation}
	flow := quickadd.New(resolver, &stubSaver{})

	flow.BeginFromMapClick(1, 2)
	require.NoError(t, flow.Present(context.Background()))

	assert.Equal(t, quickadd.StatePresented, flow.State())
	assert.Empty(t, flow.Name())
}

// ---- search pick path -------------------------------------------------------

func TestFlow_SearchPick_SkipsResolution(t *testing.T) {
	resolver := &stubResolver{name: "should not be used"}
	flow := quickadd.New(resolver, &stubSaver{})

	flow.BeginFromSearch(geocode.Candidate{
		Name:      "Paris, France",
		Latitude:  48.8566,
		Longitude: 2.3522,
	})
	require.NoError(t, flow.Present(context.Background()))

	assert.Equal(t, quickadd.StatePresented, flow.State())
	assert.Equal(t, "Paris, France", flow.Name())
	// The pick already carries a name: no reverse lookup at all.
	assert.Zero(t, resolver.calls)
}

// ---- overwrite semantics ----------------------------------------------------

func TestFlow_NewCaptureOverwritesPending(t *testing.T) {
	resolver := &stubResolver{name: "Bergen, Norway"}
	flow := quickadd.New(resolver, &stubSaver{})

	flow.BeginFromMapClick(59.9139, 10.7522)
	flow.BeginFromMapClick(60.3913, 5.3221) // second click wins

	require.NoError(t, flow.Present(context.Background()))

	lat, lng := flow.Coordinates()
	assert.InDelta(t, 60.3913, lat, 1e-9)
	assert.InDelta(t, 5.3221, lng, 1e-9)
	assert.Equal(t, 1, resolver.calls)
}

func TestFlow_StaleResolutionIsDropped(t *testing.T) {
	resolver := &stubResolver{name: "Oslo, Norway"}
	flow := quickadd.New(resolver, &stubSaver{})

	// While the lookup for the first click is in flight, a second click
	// arrives and takes over the capture.
	resolver.during = func() {
		resolver.during = nil
		flow.BeginFromMapClick(60.3913, 5.3221)
	}

	flow.BeginFromMapClick(59.9139, 10.7522)
	require.NoError(t, flow.Present(context.Background()))

	// The stale result must not populate the newer capture's form.
	assert.Equal(t, quickadd.StatePending, flow.State())
	assert.Empty(t, flow.Name())

	lat, lng := flow.Coordinates()
	assert.InDelta(t, 60.3913, lat, 1e-9)
	assert.InDelta(t, 5.3221, lng, 1e-9)
}

// ---- submit -----------------------------------------------------------------

func TestFlow_Submit(t *testing.T) {
	resolver := &stubResolver{name: "Oslo, Norway"}
	saver := &stubSaver{}
	flow := quickadd.New(resolver, saver)

	flow.BeginFromMapClick(59.9139, 10.7522)
	require.NoError(t, flow.Present(context.Background()))

	date := "2024-06-01"
	created, err := flow.Submit(context.Background(), domain.KindVisited, quickadd.Form{
		Name: "Oslo, Norway",
		Date: &date,
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, created.ID)
	assert.Equal(t, domain.KindVisited, saver.kind)
	assert.Equal(t, "Oslo, Norway", saver.rec.Name)
	assert.InDelta(t, 59.9139, saver.rec.Latitude, 1e-9)

	// A successful save returns the flow to idle.
	assert.Equal(t, quickadd.StateIdle, flow.State())
}

func TestFlow_Submit_SaveFailureStaysPresented(t *testing.T) {
	saver := &stubSaver{err: fmt.Errorf("%w: server returned status 500", domain.ErrUpstream)}
	flow := quickadd.New(&stubResolver{name: "Oslo, Norway"}, saver)

	flow.BeginFromMapClick(1, 2)
	require.NoError(t, flow.Present(context.Background()))

	_, err := flow.Submit(context.Background(), domain.KindVisited, quickadd.Form{Name: "Oslo, Norway"})

	require.Error(t, err)
	// The form stays open so the user can retry.
	assert.Equal(t, quickadd.StatePresented, flow.State())
}

func TestFlow_Submit_FromWrongState(t *testing.T) {
	flow := quickadd.New(&stubResolver{}, &stubSaver{})

	_, err := flow.Submit(context.Background(), domain.KindVisited, quickadd.Form{Name: "X"})

	assert.Error(t, err)
}

func TestFlow_Present_FromIdle(t *testing.T) {
	flow := quickadd.New(&stubResolver{}, &stubSaver{})

	assert.Error(t, flow.Present(context.Background()))
}

// ---- cancel -----------------------------------------------------------------

func TestFlow_Cancel(t *testing.T) {
	resolver := &stubResolver{name: "Oslo, Norway"}
	flow := quickadd.New(resolver, &stubSaver{})

	flow.BeginFromMapClick(1, 2)
	require.NoError(t, flow.Present(context.Background()))

	flow.Cancel()

	assert.Equal(t, quickadd.StateIdle, flow.State())
	assert.Empty(t, flow.Name())
}
