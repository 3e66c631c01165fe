package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkleiven/travel-log/internal/domain"
	"github.com/mkleiven/travel-log/internal/geocode"
)

// fakeNominatim spins up a stub upstream and returns a Client pointed at it.
func fakeNominatim(t *testing.T, h http.HandlerFunc) *geocode.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return geocode.NewClient(srv.URL, "TravelLog-test/1.0")
}

func TestClient_Search_OK(t *testing.T) {
	var gotUA string
	client := fakeNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "Oslo", q.Get("q"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "1", q.Get("addressdetails"))
		assert.Equal(t, "en", q.Get("accept-language"))
		w.Write([]byte(`[{"display_name":"Oslo, Norway","lat":"59.9","lon":"10.7"}]`))
	})

	raw, err := client.Search(context.Background(), "Oslo")

	require.NoError(t, err)
	assert.Equal(t, "TravelLog-test/1.0", gotUA)

	places, err := geocode.ParsePlaces(raw)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Oslo, Norway", places[0].DisplayName)
}

func TestClient_Search_EmptyQuery(t *testing.T) {
	client := fakeNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called for an empty query")
	})

	_, err := client.Search(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClient_Reverse_OK(t *testing.T) {
	client := fakeNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "59.9139", q.Get("lat"))
		assert.Equal(t, "10.7522", q.Get("lon"))
		assert.Equal(t, "10", q.Get("zoom"))
		w.Write([]byte(`{"display_name":"Oslo, Norway","lat":"59.9139","lon":"10.7522"}`))
	})

	raw, err := client.Reverse(context.Background(), 59.9139, 10.7522)

	require.NoError(t, err)

	place, err := geocode.ParsePlace(raw)
	require.NoError(t, err)
	assert.Equal(t, "Oslo, Norway", place.DisplayName)
}

func TestClient_RateLimited(t *testing.T) {
	client := fakeNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), "Oslo")

	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestClient_UpstreamStatus(t *testing.T) {
	client := fakeNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "broken", http.StatusBadGateway)
	})

	_, err := client.Reverse(context.Background(), 1, 2)

	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_MalformedBody(t *testing.T) {
	client := fakeNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Search(context.Background(), "Oslo")

	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestClient_Unreachable(t *testing.T) {
	// A server that is already closed refuses the connection.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	client := geocode.NewClient(srv.URL, "")

	_, err := client.Search(context.Background(), "Oslo")

	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "could not reach")
}
