package cmd

import (
	"fmt"
	"os"

	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/config"
	"github.com/resilscore/resilscore/internal/evaluate"
	"github.com/resilscore/resilscore/internal/record"
	"github.com/resilscore/resilscore/internal/rules"
	"github.com/resilscore/resilscore/internal/types"
)

// Inputs bundles everything a scoring command needs.
type Inputs struct {
	Catalog   *catalog.Catalog
	Evaluator *evaluate.Evaluator
	Countries []record.Record
}

// loadInputs loads and validates the catalog, rule set, and country data.
// Catalog warnings go to stderr; configuration errors abort.
func loadInputs(cfg *config.Config) (*Inputs, error) {
	cat, issues, err := catalog.Load(cfg.ResolveCatalogPath())
	if err != nil {
		printIssues(issues, cfg.Quiet)
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	printIssues(issues, cfg.Quiet)

	ruleList, err := rules.Load(cfg.ResolveRulesPath())
	if err != nil {
		return nil, fmt.Errorf("error loading rules: %w", err)
	}

	countries, err := record.LoadAll(cfg.ResolveDataDir())
	if err != nil {
		return nil, fmt.Errorf("error loading country data: %w", err)
	}

	evaluator, err := evaluate.New(cat, ruleList)
	if err != nil {
		return nil, err
	}

	return &Inputs{Catalog: cat, Evaluator: evaluator, Countries: countries}, nil
}

// printIssues writes configuration issues to stderr unless quiet.
func printIssues(issues []types.Issue, quiet bool) {
	if quiet {
		return
	}
	for _, issue := range issues {
		if issue.ID != "" {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", issue.Severity, issue.ID, issue.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s\n", issue.Severity, issue.Message)
		}
	}
}
