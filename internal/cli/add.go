package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkleiven/travel-log/internal/geocode"
	"github.com/mkleiven/travel-log/internal/quickadd"
)

func newAddCmd() *cobra.Command {
	var (
		lat   float64
		lng   float64
		name  string
		date  string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a place by coordinates",
		Long: "Save a visited location (or planned trip with --planned) at the given coordinates. " +
			"When --name is omitted, the place name is looked up from the coordinates, " +
			"like clicking the map in the UI.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, lat, lng, name, date, notes)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude (required)")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude (required)")
	cmd.Flags().StringVar(&name, "name", "", "place name (looked up from coordinates when omitted)")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lng")

	return cmd
}

func runAdd(cmd *cobra.Command, lat, lng float64, name, date, notes string) error {
	api := newAPIClient()
	flow := quickadd.New(geocode.NewResolver(api), api)

	// A supplied --name plays the search-pick role: the name is already
	// known, so no reverse lookup happens. Without it, the map-click path
	// resolves one from the coordinates.
	if name != "" {
		flow.BeginFromSearch(geocode.Candidate{Name: name, Latitude: lat, Longitude: lng})
	} else {
		flow.BeginFromMapClick(lat, lng)
	}

	if err := flow.Present(cmd.Context()); err != nil {
		return err
	}

	finalName := flow.Name()
	if finalName == "" {
		return fmt.Errorf("could not resolve a name for %.4f, %.4f — pass --name", lat, lng)
	}

	form := quickadd.Form{Name: finalName}
	if date != "" {
		form.Date = &date
	}
	if notes != "" {
		form.Notes = &notes
	}

	created, err := flow.Submit(cmd.Context(), currentKind(), form)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(created)
	}
	fmt.Printf("Saved %q (id %d)\n", created.Name, created.ID)
	return nil
}
