package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/omdbq/match"
	"github.com/s0up4200/omdbq/omdb"
)

var (
	searchType  string
	searchYear  int
	whereExpr   string
	preset      string
	searchFirst bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <terms>",
	Short: "Search titles and resolve every hit",
	Long: `Search OMDB by title and resolve every hit into a full record.

Searches matching more than 10 titles are rejected; narrow them with --type or --year.
Results can be filtered with an expression, either inline with --where or from a
preset configured under match.presets.

Examples:
  omdbq search tron --type movie
  omdbq search "star trek" --year 1982 --where 'Runtime > 100 && hasGenre("Sci-Fi")'
  omdbq search tron --preset long`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchType, "type", "", "movie or series")
	searchCmd.Flags().IntVarP(&searchYear, "year", "y", 0, "release year")
	searchCmd.Flags().StringVarP(&whereExpr, "where", "w", "", "match expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a match preset from config")
	searchCmd.Flags().BoolVar(&searchFirst, "first", false, "only show the first hit")
}

func runSearch(cmd *cobra.Command, args []string) error {
	expression, err := getMatchExpression()
	if err != nil {
		return err
	}

	// Compile before searching so a bad expression costs no requests
	var matcher match.Matcher
	if expression != "" {
		matcher, err = compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid match expression: %w", err)
		}
	}

	terms := strings.Join(args, " ")
	logger.Info().Str("terms", terms).Str("where", expression).Msg("Searching titles")

	api := omdb.NewAPI(client).Search(terms)
	applyCommonFilters(api, searchType, searchYear)

	var entities []omdb.Entity
	if searchFirst && matcher == nil {
		entity, err := api.First(cmd.Context())
		if err != nil {
			return err
		}
		entities = []omdb.Entity{entity}
	} else {
		entities, err = api.All(cmd.Context())
		if err != nil {
			return err
		}
	}

	if matcher != nil {
		entities, err = match.Filter(matcher, entities)
		if err != nil {
			return err
		}
		if searchFirst && len(entities) > 1 {
			entities = entities[:1]
		}
	}

	return printEntities(cmd.OutOrStdout(), entities)
}

// getMatchExpression determines the match expression to use
func getMatchExpression() (string, error) {
	// Priority: command line expression > preset > none
	if whereExpr != "" {
		return whereExpr, nil
	}

	if preset != "" {
		if cfg != nil {
			if expression, ok := cfg.Match.Presets[strings.ToLower(preset)]; ok {
				return expression, nil
			}
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", nil
}
