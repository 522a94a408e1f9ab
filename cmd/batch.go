package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/omdbq/omdb"
)

// DefaultBatchConcurrency bounds concurrent lookups of the batch command
const DefaultBatchConcurrency = 4

var (
	batchConcurrency int
	batchPlot        string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <ttid>...",
	Short: "Look up several IMDb ids at once",
	Long: `Look up several IMDb ids concurrently. Results are printed in argument order.
Failed lookups are logged and reported at the end; the others are still printed.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", DefaultBatchConcurrency, "maximum concurrent lookups")
	batchCmd.Flags().StringVar(&batchPlot, "plot", "", "plot length: short or full")
}

func runBatch(cmd *cobra.Command, args []string) error {
	result := resolveBatch(cmd.Context(), client, args, batchPlot, batchConcurrency, logger)

	if err := printEntities(cmd.OutOrStdout(), result.Entities); err != nil {
		return err
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d lookups failed", len(result.Failed), len(args))
	}
	return nil
}

// BatchResult contains the results of a batch lookup
type BatchResult struct {
	Entities []omdb.Entity
	Failed   []LookupError
}

// LookupError contains information about a failed lookup
type LookupError struct {
	TTID string
	Err  error
}

// Error implements the error interface
func (e LookupError) Error() string {
	return fmt.Sprintf("failed to look up %s: %v", e.TTID, e.Err)
}

// Unwrap exposes the underlying error
func (e LookupError) Unwrap() error {
	return e.Err
}

// resolveBatch looks up every ttid with at most concurrency requests in flight.
// Entities keep the order of ttids; failures do not stop the other lookups.
func resolveBatch(ctx context.Context, querier omdb.Querier, ttids []string, plot string, concurrency int, logger zerolog.Logger) BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	entities := make([]omdb.Entity, len(ttids))
	errs := make([]error, len(ttids))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, ttid := range ttids {
		g.Go(func() error {
			api := omdb.NewAPI(querier).TTID(ttid)
			if plot != "" {
				api.Plot(plot)
			}

			entity, err := api.First(ctx)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("ttid", ttid).
					Msg("Failed to look up title")
				errs[i] = err
				// Continue with the other lookups
				return nil
			}
			entities[i] = entity
			return nil
		})
	}

	g.Wait()

	var result BatchResult
	for i, ttid := range ttids {
		if errs[i] != nil {
			result.Failed = append(result.Failed, LookupError{TTID: ttid, Err: errs[i]})
			continue
		}
		result.Entities = append(result.Entities, entities[i])
	}

	return result
}
