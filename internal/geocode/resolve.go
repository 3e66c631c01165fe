package geocode

import "strings"

// UnknownLocation is the sentinel returned when a place yields no usable
// name at all. Callers treat it as data (an empty, editable name field),
// never as an error.
const UnknownLocation = "Unknown Location"

// LocationName derives a display name for a reverse-lookup result.
//
// Structured address components win, in priority order: city, town, village,
// municipality, county, state, country. When the hit is a settlement (city,
// town, or village) the country is appended for disambiguation. Without any
// structured address, the first comma-separated segment of the free-text
// display name is used, again with the country appended when known. If
// nothing resolves, UnknownLocation is returned.
func LocationName(p Place) string {
	var name string

	if a := p.Address; a != nil {
		name = firstNonEmpty(a.City, a.Town, a.Village, a.Municipality, a.County, a.State, a.Country)

		settlement := a.City != "" || a.Town != "" || a.Village != ""
		if settlement && a.Country != "" && a.Country != name {
			name = name + ", " + a.Country
		}
	}

	if name == "" && p.DisplayName != "" {
		parts := strings.Split(p.DisplayName, ",")
		name = strings.TrimSpace(parts[0])
		if p.Address != nil && p.Address.Country != "" && len(parts) > 1 {
			name = name + ", " + p.Address.Country
		}
	}

	if name == "" {
		return UnknownLocation
	}
	return name
}

// Candidate is a search result shaped for presentation: a clean short name,
// parsed coordinates, and the raw display name for detail lines.
type Candidate struct {
	Name        string  `json:"name"`
	CityName    string  `json:"city_name"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
}

// Candidates converts raw search results into presentable candidates,
// preserving upstream order. Results whose coordinates do not parse are
// dropped rather than failing the whole set.
func Candidates(places []Place) []Candidate {
	out := make([]Candidate, 0, len(places))
	for _, p := range places {
		lat, lng, err := p.Coordinates()
		if err != nil {
			continue
		}

		parts := strings.Split(p.DisplayName, ",")
		cityName := strings.TrimSpace(parts[0])
		country := ""

		if a := p.Address; a != nil {
			country = a.Country
			if s := firstNonEmpty(a.City, a.Town, a.Village); s != "" {
				cityName = s
			}
		} else if len(parts) > 1 {
			// Heuristic fallback: the last display-name segment is usually
			// the country, unless it is suspiciously long.
			last := strings.TrimSpace(parts[len(parts)-1])
			if last != "" && len(last) < 50 {
				country = last
			}
		}

		name := cityName
		if country != "" {
			name = cityName + ", " + country
		}

		typ := p.Type
		if typ == "" {
			typ = "city"
		}

		out = append(out, Candidate{
			Name:        name,
			CityName:    cityName,
			Country:     country,
			Latitude:    lat,
			Longitude:   lng,
			DisplayName: p.DisplayName,
			Type:        typ,
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
