package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/resilscore/resilscore/internal/config"
	"github.com/resilscore/resilscore/internal/output"
)

var (
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
)

// exitFunc is overridable in tests.
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "resilscore",
	Short: "Resilscore - a resilience maturity index calculator for country datasets",
	Long: `Resilscore computes a standardized maturity index for each country in a
dataset: raw indicator values are normalized, aggregated into weighted pillar
scores, combined into a 1.0-4.0 maturity score, and adjusted by a prioritized
rule set.

By default, resilscore evaluates every country under the data directory and
prints a maturity summary. Use specialized commands to score one country,
rank leaders for a metric, or validate configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScoreAll(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Project root directory containing catalog, rules, and country data")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (requires --format json)")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	configPaths := []string{".resilscorerc.json", ".resilscorerc.yaml", ".resilscorerc.yml"}
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				exitFunc(1)
			}
			break
		}
	}
}

func runScoreAll() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	inputs, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	reports := inputs.Evaluator.EvaluateAll(inputs.Countries, cfg.EffectiveConcurrency())

	if cfg.Format == "json" {
		return output.NewJSONFormatter(cfg.Output).FormatReports(reports)
	}
	return output.NewConsoleFormatter(cfg.Quiet, cfg.Verbose, inputs.Catalog).FormatReports(reports)
}
