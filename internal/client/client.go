// Package client provides an HTTP client for the Travel Log REST API.
// It is the only way the CLI and the map-facing components talk to the
// server; nothing outside this package builds API URLs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkleiven/travel-log/internal/domain"
	"github.com/mkleiven/travel-log/internal/geocode"
)

// Client is an HTTP client for the Travel Log API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client for the server at baseURL
// (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// recordPayload is the wire shape shared by both kinds; exactly one of the
// two date fields is populated depending on which endpoint answered.
type recordPayload struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	VisitedDate *string   `json:"visited_date"`
	PlannedDate *string   `json:"planned_date"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p recordPayload) toRecord(kind domain.Kind) domain.Record {
	date := p.VisitedDate
	if kind == domain.KindPlanned {
		date = p.PlannedDate
	}
	return domain.Record{
		ID:        p.ID,
		Name:      p.Name,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Date:      date,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// payloadFromRecord builds a request body, placing the date under the
// kind-specific field name.
func payloadFromRecord(kind domain.Kind, rec domain.Record) map[string]any {
	body := map[string]any{
		"name":      rec.Name,
		"latitude":  rec.Latitude,
		"longitude": rec.Longitude,
		"notes":     rec.Notes,
	}
	if kind == domain.KindPlanned {
		body["planned_date"] = rec.Date
	} else {
		body["visited_date"] = rec.Date
	}
	return body
}

// kindPath returns the collection path for a record kind.
func kindPath(kind domain.Kind) string {
	if kind == domain.KindPlanned {
		return "/api/trips"
	}
	return "/api/locations"
}

// List returns all records of the kind, newest created first.
func (c *Client) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	var payloads []recordPayload
	if err := c.get(ctx, kindPath(kind), &payloads); err != nil {
		return nil, err
	}
	records := make([]domain.Record, len(payloads))
	for i, p := range payloads {
		records[i] = p.toRecord(kind)
	}
	return records, nil
}

// Get returns a single record by id.
func (c *Client) Get(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error) {
	var p recordPayload
	if err := c.get(ctx, fmt.Sprintf("%s/%d", kindPath(kind), id), &p); err != nil {
		return domain.Record{}, err
	}
	return p.toRecord(kind), nil
}

// Create saves a new record and returns it with the server-assigned id.
func (c *Client) Create(ctx context.Context, kind domain.Kind, rec domain.Record) (domain.Record, error) {
	var p recordPayload
	if err := c.send(ctx, http.MethodPost, kindPath(kind), payloadFromRecord(kind, rec), &p); err != nil {
		return domain.Record{}, err
	}
	return p.toRecord(kind), nil
}

// Update replaces the mutable fields of an existing record.
func (c *Client) Update(ctx context.Context, kind domain.Kind, rec domain.Record) error {
	path := fmt.Sprintf("%s/%d", kindPath(kind), rec.ID)
	return c.send(ctx, http.MethodPut, path, payloadFromRecord(kind, rec), nil)
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", kindPath(kind), id), nil, nil)
}

// SearchPlaces runs a geocoding search through the server proxy and returns
// the parsed candidates in upstream order.
func (c *Client) SearchPlaces(ctx context.Context, query string) ([]geocode.Place, error) {
	path := "/api/geocoding/search?q=" + url.QueryEscape(query)
	var places []geocode.Place
	if err := c.get(ctx, path, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// ReverseGeocode resolves the place at the given coordinates through the
// server proxy.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (geocode.Place, error) {
	path := "/api/geocoding/reverse?lat=" + strconv.FormatFloat(lat, 'f', -1, 64) +
		"&lng=" + strconv.FormatFloat(lng, 'f', -1, 64)
	var place geocode.Place
	if err := c.get(ctx, path, &place); err != nil {
		return geocode.Place{}, err
	}
	return place, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// send performs a request with an optional JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, result)
}

// do executes the request, maps error statuses onto the domain error
// taxonomy, and decodes a successful body into result when asked.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: decoding response: %v", domain.ErrParse, err)
		}
	}
	return nil
}

// apiError turns a non-200 response into a sentinel-wrapped error carrying
// the server's message.
func apiError(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	if raw, err := io.ReadAll(resp.Body); err == nil {
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			message = body.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrValidation, message)
	default:
		return fmt.Errorf("%w: server returned status %d: %s", domain.ErrUpstream, resp.StatusCode, message)
	}
}
