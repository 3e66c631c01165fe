package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mkleiven/travel-log/internal/domain"
	"github.com/mkleiven/travel-log/internal/geocode"
	"github.com/mkleiven/travel-log/internal/mapview"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecordTable renders records as an aligned table.
func printRecordTable(kind domain.Kind, records []domain.Record) error {
	if len(records) == 0 {
		fmt.Printf("No %s yet. Add one with 'travel add'.\n", kindPlural(kind))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tCOORDINATES\tDATE\tNOTES\n")
	for _, rec := range records {
		fmt.Fprintf(w, "%d\t%s\t%.4f, %.4f\t%s\t%s\n",
			rec.ID, rec.Name, rec.Latitude, rec.Longitude,
			formatOptionalDate(rec.Date), deref(rec.Notes))
	}
	return w.Flush()
}

// printTimeline renders year-grouped records.
func printTimeline(groups []mapview.YearGroup) error {
	if len(groups) == 0 {
		fmt.Println("Nothing to show yet.")
		return nil
	}
	for _, g := range groups {
		fmt.Printf("%s\n", g.Year)
		for _, rec := range g.Records {
			line := "  " + rec.Name
			if rec.Date != nil {
				line += "  (" + mapview.FormatDate(*rec.Date) + ")"
			}
			fmt.Println(line)
			if rec.Notes != nil && *rec.Notes != "" {
				fmt.Printf("    %s\n", *rec.Notes)
			}
		}
	}
	return nil
}

// printCandidateTable renders geocoding search results.
func printCandidateTable(candidates []geocode.Candidate) error {
	if len(candidates) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tCOORDINATES\tTYPE\tDETAILS\n")
	for _, c := range candidates {
		fmt.Fprintf(w, "%s\t%.4f, %.4f\t%s\t%s\n",
			c.Name, c.Latitude, c.Longitude, c.Type, c.DisplayName)
	}
	return w.Flush()
}

func kindPlural(kind domain.Kind) string {
	if kind == domain.KindPlanned {
		return "planned trips"
	}
	return "visited locations"
}

func formatOptionalDate(date *string) string {
	if date == nil || *date == "" {
		return "-"
	}
	return mapview.FormatDate(*date)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
