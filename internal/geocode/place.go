package geocode

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mkleiven/travel-log/internal/domain"
)

// Address holds the structured address components Nominatim returns when
// addressdetails=1 is requested. Only the components the name-resolution
// policy cares about are mapped; the rest are ignored.
type Address struct {
	City         string `json:"city,omitempty"`
	Town         string `json:"town,omitempty"`
	Village      string `json:"village,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	County       string `json:"county,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Place is a single Nominatim result, from either a search or a reverse
// lookup. Nominatim sends lat/lon as strings.
type Place struct {
	DisplayName string   `json:"display_name"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	Type        string   `json:"type,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// Coordinates parses the string lat/lon pair into floats.
func (p Place) Coordinates() (lat, lng float64, err error) {
	lat, err = strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid latitude %q", domain.ErrParse, p.Lat)
	}
	lng, err = strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid longitude %q", domain.ErrParse, p.Lon)
	}
	return lat, lng, nil
}

// ParsePlace decodes a reverse-lookup response body into a Place.
func ParsePlace(raw json.RawMessage) (Place, error) {
	var p Place
	if err := json.Unmarshal(raw, &p); err != nil {
		return Place{}, fmt.Errorf("%w: decoding place: %v", domain.ErrParse, err)
	}
	return p, nil
}

// ParsePlaces decodes a search response body into a slice of Places.
func ParsePlaces(raw json.RawMessage) ([]Place, error) {
	var places []Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("%w: decoding places: %v", domain.ErrParse, err)
	}
	return places, nil
}
