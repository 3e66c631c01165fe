// Package cli defines the cobra command tree for the travel CLI, a terminal
// companion to the map UI that talks to a running Travel Log API server.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkleiven/travel-log/internal/client"
	"github.com/mkleiven/travel-log/internal/domain"
)

var (
	flagServer  string
	flagFormat  string
	flagPlanned bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "travel",
		Short:         "Record places you have visited and trips you plan",
		Long:          "A terminal client for the Travel Log API. List, add, and remove visited locations and planned trips, search for places, and view statistics.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8080", "base URL of the Travel Log API server")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().BoolVar(&flagPlanned, "planned", false, "operate on planned trips instead of visited locations")

	root.AddCommand(
		newListCmd(),
		newTimelineCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newSearchCmd(),
		newStatsCmd(),
	)

	return root
}

// newAPIClient builds the API client from the --server flag.
func newAPIClient() *client.Client {
	return client.New(flagServer)
}

// currentKind maps the --planned flag onto a record kind.
func currentKind() domain.Kind {
	if flagPlanned {
		return domain.KindPlanned
	}
	return domain.KindVisited
}

func isJSON() bool {
	return flagFormat == "json"
}
