package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/omdbq/config"
	"github.com/s0up4200/omdbq/format"
	"github.com/s0up4200/omdbq/match"
	"github.com/s0up4200/omdbq/omdb"
)

var (
	version   = "dev"
	buildTime = "unknown"

	cfgFile  string
	cfg      *config.Config
	logger   = zerolog.New(os.Stderr).With().Timestamp().Logger()
	client   *omdb.Client
	compiler = match.NewExprCompiler(match.WithCache(100))

	// Command flags
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "omdbq",
	Short: "Query the OMDB movie and series database",
	Long: `omdbq is a CLI for the OMDB API. It looks up movies and series by IMDb id
or title, resolves searches into full records, and filters the results with
expressions.`,
	SilenceUsage: true,
}

// SetVersion records build information for the version and update commands
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: console or json (default from config)")
}

// initializeApp initializes the configuration and the OMDB client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging, os.Stderr)

	client, err = omdb.NewClient(cfg.OMDB.Key, logger,
		omdb.WithBaseURL(cfg.OMDB.BaseURI),
		omdb.WithTimeout(cfg.OMDB.Timeout),
		omdb.WithRateLimit(cfg.OMDB.RateLimit, cfg.OMDB.Burst),
		omdb.WithUserAgent("omdbq/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create OMDB client: %w", err)
	}

	logger.Debug().
		Str("base_uri", cfg.OMDB.BaseURI).
		Float64("rate_limit", cfg.OMDB.RateLimit).
		Msg("OMDB client ready")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	color := cfg.Color && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()))
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// printEntities writes entities in the selected output format
func printEntities(w io.Writer, entities []omdb.Entity) error {
	name := outputFormat
	if name == "" && cfg != nil {
		name = cfg.Output.Format
	}

	showDetails := cfg == nil || cfg.Output.ShowDetails
	formatter, err := format.New(name, format.Options{ShowDetails: showDetails})
	if err != nil {
		return err
	}
	return formatter.Write(w, entities)
}
