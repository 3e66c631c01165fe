package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkleiven/travel-log/internal/client"
	"github.com/mkleiven/travel-log/internal/domain"
)

// fakeAPI spins up a stub API server and returns a Client pointed at it.
func fakeAPI(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestClient_List(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/locations", r.URL.Path)
		w.Write([]byte(`[
			{"id":2,"name":"Bergen, Norway","latitude":60.39,"longitude":5.32,"visited_date":"2024-03-10","created_at":"2024-03-11T08:00:00Z"},
			{"id":1,"name":"Oslo, Norway","latitude":59.91,"longitude":10.75,"created_at":"2024-01-01T12:00:00Z"}
		]`))
	})

	records, err := api.List(context.Background(), domain.KindVisited)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.EqualValues(t, 2, records[0].ID)
	require.NotNil(t, records[0].Date)
	assert.Equal(t, "2024-03-10", *records[0].Date)
	assert.Nil(t, records[1].Date)
}

func TestClient_List_TripsUsePlannedDate(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/trips", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Tokyo, Japan","latitude":35.67,"longitude":139.65,"planned_date":"2026-07-15","created_at":"2026-01-01T00:00:00Z"}]`))
	})

	records, err := api.List(context.Background(), domain.KindPlanned)

	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Date)
	assert.Equal(t, "2026-07-15", *records[0].Date)
}

func TestClient_Create(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/trips", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Tokyo, Japan", body["name"])
		// A trip's date is sent under planned_date, never visited_date.
		assert.Equal(t, "2026-07-15", body["planned_date"])
		assert.NotContains(t, body, "visited_date")

		w.Write([]byte(`{"id":5,"name":"Tokyo, Japan","latitude":35.67,"longitude":139.65,"planned_date":"2026-07-15","created_at":"2026-01-01T00:00:00Z"}`))
	})

	date := "2026-07-15"
	rec, err := api.Create(context.Background(), domain.KindPlanned, domain.Record{
		Name:      "Tokyo, Japan",
		Latitude:  35.67,
		Longitude: 139.65,
		Date:      &date,
	})

	require.NoError(t, err)
	assert.EqualValues(t, 5, rec.ID)
}

func TestClient_Create_ValidationError(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Name, latitude, and longitude are required"}`))
	})

	_, err := api.Create(context.Background(), domain.KindVisited, domain.Record{})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "required")
}

func TestClient_Update(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/locations/3", r.URL.Path)
		w.Write([]byte(`{"message":"Location updated successfully"}`))
	})

	err := api.Update(context.Background(), domain.KindVisited, domain.Record{
		ID: 3, Name: "Lyon, France", Latitude: 45.76, Longitude: 4.84,
	})

	assert.NoError(t, err)
}

func TestClient_Delete_NotFound(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Trip not found"}`))
	})

	err := api.Delete(context.Background(), domain.KindPlanned, 999)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Trip not found")
}

func TestClient_Get_ServerError(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
	})

	_, err := api.Get(context.Background(), domain.KindVisited, 1)

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_SearchPlaces(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/geocoding/search", r.URL.Path)
		assert.Equal(t, "Oslo city", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"display_name":"Oslo, Norway","lat":"59.91","lon":"10.75"}]`))
	})

	places, err := api.SearchPlaces(context.Background(), "Oslo city")

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Oslo, Norway", places[0].DisplayName)
}

func TestClient_ReverseGeocode(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/geocoding/reverse", r.URL.Path)
		assert.Equal(t, "59.9139", r.URL.Query().Get("lat"))
		assert.Equal(t, "10.7522", r.URL.Query().Get("lng"))
		w.Write([]byte(`{"display_name":"Oslo, Norway","address":{"city":"Oslo","country":"Norway"}}`))
	})

	place, err := api.ReverseGeocode(context.Background(), 59.9139, 10.7522)

	require.NoError(t, err)
	require.NotNil(t, place.Address)
	assert.Equal(t, "Oslo", place.Address.City)
}

func TestClient_MalformedResponse(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{truncated`))
	})

	_, err := api.List(context.Background(), domain.KindVisited)

	assert.ErrorIs(t, err, domain.ErrParse)
}
