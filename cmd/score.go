package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resilscore/resilscore/internal/config"
	"github.com/resilscore/resilscore/internal/evaluate"
	"github.com/resilscore/resilscore/internal/output"
)

var scoreCmd = &cobra.Command{
	Use:   "score <country-id>",
	Short: "Score a single country with a full per-pillar breakdown",
	Long: `Evaluates one country through the whole pipeline and prints its pillar
scores, metric contributions, composite maturity score, and the rules that
fired, in order.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(countryID string) error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	inputs, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	var report *evaluate.CountryReport
	for _, rec := range inputs.Countries {
		if rec.ID == countryID {
			r := inputs.Evaluator.EvaluateCountry(rec)
			report = &r
			break
		}
	}
	if report == nil {
		return fmt.Errorf("unknown country id %q", countryID)
	}

	if cfg.Format == "json" {
		return output.NewJSONFormatter(cfg.Output).FormatReports([]evaluate.CountryReport{*report})
	}

	// Single-country view always shows the breakdown.
	formatter := output.NewConsoleFormatter(cfg.Quiet, true, inputs.Catalog)
	return formatter.FormatReports([]evaluate.CountryReport{*report})
}
