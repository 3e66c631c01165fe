package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved records, newest first",
		Long:  "List visited locations (or planned trips with --planned), most recently created first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := newAPIClient().List(cmd.Context(), currentKind())
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(records)
			}
			return printRecordTable(currentKind(), records)
		},
	}
}
