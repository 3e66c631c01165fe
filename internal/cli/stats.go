package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkleiven/travel-log/internal/mapview"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show visited/planned/country counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := mapview.FetchStats(cmd.Context(), newAPIClient())
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(stats)
			}
			fmt.Printf("Visited locations: %d\n", stats.VisitedCount)
			fmt.Printf("Planned trips:     %d\n", stats.PlannedCount)
			fmt.Printf("Countries:         %d (approximate)\n", stats.CountryCount)
			return nil
		},
	}
}
