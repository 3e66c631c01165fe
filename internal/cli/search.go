package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkleiven/travel-log/internal/geocode"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search for places by name",
		Long:  "Search the geocoding service for places matching the query. Use a result's coordinates with 'travel add'.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			places, err := newAPIClient().SearchPlaces(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			candidates := geocode.Candidates(places)
			if isJSON() {
				return printJSON(candidates)
			}
			return printCandidateTable(candidates)
		},
	}
}
