package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/rulebridge/internal/cli"
	"github.com/TimurManjosov/rulebridge/internal/config"
	"github.com/TimurManjosov/rulebridge/internal/fetch"
	"github.com/TimurManjosov/rulebridge/internal/pipeline"
	"github.com/TimurManjosov/rulebridge/internal/telemetry"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch every catalog source and emit sing-box rule-sets",
	Long: `Fetch every catalog source concurrently, mirror the raw rule lists under
the rule-set directory and emit one sing-box rule-set JSON per source under
the sing-box directory.

Per-source failures are reported in the summary and do not fail the run; the
command only errors out before the run starts, when a directory cannot be
created or the catalog cannot be loaded.

Examples:
  rulebridge run
  rulebridge run --format json
  rulebridge run --catalog providers.yaml --quiet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		log := newLogger(cfg)

		sources, err := loadSources(cfg)
		if err != nil {
			return err
		}

		// Both root directories exist before any pipeline starts. This is
		// the only filesystem failure that aborts the whole run.
		for _, dir := range []string{cfg.RawDir, cfg.OutDir} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}

		telemetry.Init()
		fetcher := fetch.New(cfg.FetchTimeout, cfg.UserAgent, cfg.FetchRetries)
		runner := pipeline.New(fetcher, cfg.OutDir, log)

		results := runner.Run(cmd.Context(), sources)

		if !quiet {
			if err := cli.PrintSummary(results, cli.OutputFormat(format)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
