package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TimurManjosov/rulebridge/internal/catalog"
	"github.com/TimurManjosov/rulebridge/internal/config"
)

var (
	// Global flags
	catalogPath string
	format      string
	quiet       bool
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rulebridge",
	Short: "Convert clash rule-provider lists into sing-box rule-sets",
	Long: `Rulebridge fetches a catalog of remotely-hosted clash rule-provider lists,
mirrors the raw text, and emits each list as a sing-box rule-set JSON file.

Examples:
  rulebridge run
  rulebridge run --format json
  rulebridge catalog
  rulebridge catalog --catalog providers.yaml
  rulebridge serve`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a rule-providers YAML file (defaults to the compiled-in catalog)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose (debug) logging")
}

// newLogger builds the process logger from config and flags. The --verbose
// and --quiet flags win over LOG_LEVEL.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// loadSources resolves the effective catalog: --catalog flag, then
// CATALOG_PATH, then the compiled-in catalog.
func loadSources(cfg *config.Config) ([]catalog.Source, error) {
	path := catalogPath
	if path == "" {
		path = cfg.CatalogPath
	}
	if path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Sources()
}
