package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/config"
	"github.com/resilscore/resilscore/internal/record"
	"github.com/resilscore/resilscore/internal/rules"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate catalog, rules, and country data configuration",
	Long: `Checks the metric catalog, rule set, and country datasets without
evaluating anything: weight sums, scoring types, rule condition and impact
types, and per-country field coverage. Exits non-zero when any error-level
problem is found.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	cat, issues, err := catalog.Load(cfg.ResolveCatalogPath())
	printIssues(issues, false)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if _, err := rules.Load(cfg.ResolveRulesPath()); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	countries, err := record.LoadAll(cfg.ResolveDataDir())
	if err != nil {
		return fmt.Errorf("country data: %w", err)
	}

	accessor := record.NewAccessor(cat)
	missing := 0
	for _, rec := range countries {
		recIssues := accessor.CheckRecord(rec)
		missing += len(recIssues)
		if verbose {
			printIssues(recIssues, false)
		}
	}

	if !quiet {
		fmt.Printf("catalog, rules, and %d countries validated", len(countries))
		if missing > 0 {
			fmt.Printf(" (%d missing field values", missing)
			if !verbose {
				fmt.Printf(", rerun with --verbose for details")
			}
			fmt.Printf(")")
		}
		fmt.Println()
	}
	return nil
}
