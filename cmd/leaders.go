package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resilscore/resilscore/internal/config"
	"github.com/resilscore/resilscore/internal/leaderboard"
	"github.com/resilscore/resilscore/internal/output"
)

var topN int

var leadersCmd = &cobra.Command{
	Use:   "leaders <metric-id>",
	Short: "Rank the top-performing countries for one metric",
	Long: `Normalizes the given metric for every country in the dataset and prints
the top performers by normalized score. Countries without a value for the
metric are excluded; ties break on country id.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLeaders(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	leadersCmd.Flags().IntVarP(&topN, "top", "n", 0, "Number of leaders to show (default from config)")
	rootCmd.AddCommand(leadersCmd)
}

func runLeaders(metricID string) error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if topN > 0 {
		cfg.TopN = topN
	}

	inputs, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	metric, ok := inputs.Catalog.Metric(metricID)
	if !ok {
		return fmt.Errorf("unknown metric id %q", metricID)
	}

	leaders := leaderboard.Rank(inputs.Evaluator.Normalizer(), metric, inputs.Countries, cfg.TopN)

	if cfg.Format == "json" {
		return output.NewJSONFormatter(cfg.Output).FormatLeaders(leaders)
	}
	return output.NewConsoleFormatter(cfg.Quiet, cfg.Verbose, inputs.Catalog).FormatLeaders(leaders)
}
