package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/omdbq/omdb"
)

var (
	getID    string
	getTitle string
	getType  string
	getYear  int
	getPlot  string
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Look up a single movie or series",
	Long: `Look up one movie or series by IMDb id or exact title.

Examples:
  omdbq get --id tt0084827
  omdbq get --title "Tron" --year 1982 --plot full`,
	PreRunE: initializeApp,
	RunE:    runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVar(&getID, "id", "", "IMDb id, e.g. tt0084827")
	getCmd.Flags().StringVarP(&getTitle, "title", "t", "", "exact title")
	getCmd.Flags().StringVar(&getType, "type", "", "movie or series")
	getCmd.Flags().IntVarP(&getYear, "year", "y", 0, "release year")
	getCmd.Flags().StringVar(&getPlot, "plot", "", "plot length: short or full")
}

func runGet(cmd *cobra.Command, args []string) error {
	api := omdb.NewAPI(client)
	if getID != "" {
		api.TTID(getID)
	}
	if getTitle != "" {
		api.Title(getTitle)
	}
	applyCommonFilters(api, getType, getYear)
	if getPlot != "" {
		api.Plot(getPlot)
	}

	logger.Debug().Interface("filters", api.Filters()).Msg("Looking up title")

	entity, err := api.First(cmd.Context())
	if err != nil {
		return err
	}

	return printEntities(cmd.OutOrStdout(), []omdb.Entity{entity})
}

// applyCommonFilters sets the optional type and year filters
func applyCommonFilters(api *omdb.API, typ string, year int) {
	if typ != "" {
		api.Type(typ)
	}
	if year > 0 {
		api.Year(year)
	}
}
