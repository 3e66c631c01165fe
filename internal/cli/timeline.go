package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkleiven/travel-log/internal/mapview"
)

func newTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show records grouped by year",
		Long:  "Show visited locations (or planned trips with --planned) grouped by the year of their date, newest year first. Undated records appear last.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := newAPIClient().List(cmd.Context(), currentKind())
			if err != nil {
				return err
			}

			groups := mapview.GroupByYear(records)
			if isJSON() {
				return printJSON(groups)
			}
			return printTimeline(groups)
		},
	}
}
