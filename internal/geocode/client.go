// Package geocode talks to the Nominatim place-lookup service and turns its
// answers into names the rest of the application can show. The server-side
// gateway uses Client to proxy lookups; the client side uses the parsing and
// name-resolution helpers on the proxied responses.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkleiven/travel-log/internal/domain"
)

const (
	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent identifies this application to Nominatim, whose usage
	// policy requires a meaningful User-Agent.
	DefaultUserAgent = "TravelLog/1.0"

	// requestTimeout bounds every outbound lookup. Calls exceeding it fail
	// as a timeout; no retry is attempted.
	requestTimeout = 10 * time.Second
)

// Client performs search and reverse lookups against a Nominatim server.
// Responses are returned as raw JSON so the HTTP gateway can pass them
// through to its caller verbatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient constructs a Client for the given Nominatim base URL.
// Empty baseURL or userAgent fall back to the public instance defaults.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

// Search looks up places matching a free-text query and returns the raw
// JSON array of candidates.
// Returns domain.ErrValidation if query is empty, domain.ErrUpstream on
// network/timeout/non-200 failures, domain.ErrParse on a malformed body.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	params := url.Values{
		"format":          {"json"},
		"q":               {query},
		"limit":           {"10"},
		"addressdetails":  {"1"},
		"accept-language": {"en"},
	}
	return c.get(ctx, "/search", params)
}

// Reverse looks up the place at the given coordinates and returns the raw
// JSON place detail. Failure modes match Search.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	params := url.Values{
		"format":          {"json"},
		"lat":             {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":             {strconv.FormatFloat(lng, 'f', -1, 64)},
		"zoom":            {"10"},
		"addressdetails":  {"1"},
		"accept-language": {"en"},
	}
	return c.get(ctx, "/reverse", params)
}

// get performs a single upstream request and classifies its failures.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode.Client: creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, classifyTransportError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: rate limited by geocoding service (status %d)", domain.ErrUpstream, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: geocoding service returned status %d: %s", domain.ErrUpstream, resp.StatusCode, truncate(string(body), 100))
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: geocoding service returned malformed JSON", domain.ErrParse)
	}
	return json.RawMessage(body), nil
}

// classifyTransportError gives timeout a distinct user-facing message so the
// caller can tell it apart from plain connectivity failure.
func classifyTransportError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "geocoding request timed out"
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return "geocoding request timed out"
	}
	return fmt.Sprintf("could not reach geocoding service: %v", err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
