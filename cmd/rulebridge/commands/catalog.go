package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/rulebridge/internal/cli"
	"github.com/TimurManjosov/rulebridge/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the rule sources the run command will process",
	Long: `List the effective catalog: name, behavior, URL and raw mirror path of
every rule source.

Examples:
  rulebridge catalog
  rulebridge catalog --format yaml
  rulebridge catalog --catalog providers.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		sources, err := loadSources(cfg)
		if err != nil {
			return err
		}

		if quiet {
			return nil
		}
		if len(sources) == 0 {
			fmt.Println("No sources found")
			return nil
		}
		return cli.PrintSources(sources, cli.OutputFormat(format))
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
