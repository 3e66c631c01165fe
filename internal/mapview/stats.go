package mapview

import (
	"context"
	"strings"

	"github.com/mkleiven/travel-log/internal/domain"
)

// Stats summarizes both collections for the statistics panel.
type Stats struct {
	VisitedCount int `json:"visited_count"`
	PlannedCount int `json:"planned_count"`

	// CountryCount is approximate: it counts distinct trailing
	// comma-separated segments of visited-location names ("Oslo, Norway" →
	// "Norway"), falling back to the whole name when there is no comma.
	// Records carry no structured country field, so this heuristic is the
	// best available without re-geocoding every record.
	CountryCount int `json:"country_count"`
}

// ComputeStats derives Stats from the two record lists.
func ComputeStats(visited, planned []domain.Record) Stats {
	countries := make(map[string]struct{})
	for _, rec := range visited {
		parts := strings.Split(rec.Name, ",")
		country := strings.TrimSpace(parts[len(parts)-1])
		if country == "" {
			country = rec.Name
		}
		countries[country] = struct{}{}
	}

	return Stats{
		VisitedCount: len(visited),
		PlannedCount: len(planned),
		CountryCount: len(countries),
	}
}

// FetchStats loads both collections and computes their Stats.
func FetchStats(ctx context.Context, api Lister) (Stats, error) {
	visited, err := api.List(ctx, domain.KindVisited)
	if err != nil {
		return Stats{}, err
	}
	planned, err := api.List(ctx, domain.KindPlanned)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(visited, planned), nil
}
