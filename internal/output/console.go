// Package output renders evaluation results for consumers: a lipgloss
// console view and a JSON export. Nothing here touches scoring logic.
package output

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/evaluate"
	"github.com/resilscore/resilscore/internal/leaderboard"
	"github.com/resilscore/resilscore/internal/types"
)

// ConsoleFormatter formats results in a compact, summary-first style.
type ConsoleFormatter struct {
	quiet   bool
	verbose bool
	cat     *catalog.Catalog
}

// NewConsoleFormatter creates a ConsoleFormatter. The catalog supplies
// display labels for metric and pillar ids.
func NewConsoleFormatter(quiet, verbose bool, cat *catalog.Catalog) *ConsoleFormatter {
	return &ConsoleFormatter{quiet: quiet, verbose: verbose, cat: cat}
}

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

// stageStyle picks a color per maturity stage.
func stageStyle(stage string) lipgloss.Style {
	switch stage {
	case types.StageResilient, types.StageProactive:
		return greenStyle
	case types.StageCompliant:
		return yellowStyle
	default:
		return redStyle
	}
}

// FormatReports prints a status table of country evaluations, one line per
// country, with per-pillar breakdowns in verbose mode.
func (f *ConsoleFormatter) FormatReports(reports []evaluate.CountryReport) error {
	if f.quiet {
		return nil
	}

	nameWidth := f.nameColumnWidth(reports)

	fmt.Println()
	for _, r := range reports {
		name := truncate(r.CountryName, nameWidth)
		padding := strings.Repeat(" ", nameWidth-utf8.RuneCountInString(name))

		if r.FinalScore == nil {
			fmt.Printf("  %s%s  %s\n", name, padding, dimStyle.Render("no data"))
			continue
		}

		line := fmt.Sprintf("%.2f %s", *r.FinalScore, stageStyle(r.FinalStage).Render(r.FinalStage))
		if len(r.Rules.AppliedRuleIDs) > 0 {
			line += dimStyle.Render(fmt.Sprintf("  (%d rules applied)", len(r.Rules.AppliedRuleIDs)))
		}
		fmt.Printf("  %s%s  %s\n", name, padding, line)

		if f.verbose {
			f.printPillars(r)
		}
	}

	f.printSummaryLine(reports)
	return nil
}

// printPillars prints the per-pillar breakdown for one country.
func (f *ConsoleFormatter) printPillars(r evaluate.CountryReport) {
	for _, p := range r.Pillars {
		label := f.cat.Label(p.PillarID)
		line := fmt.Sprintf("    %-24s %6.2f", label, p.Score)
		if !p.WeightValid {
			line += " " + redStyle.Render("(weights invalid)")
		}
		fmt.Println(line)

		for _, c := range p.Contributions {
			fmt.Println(dimStyle.Render(fmt.Sprintf(
				"      %-28s %6.1f × %.2f = %6.2f [%s]",
				f.cat.Label(c.MetricID), c.Normalized, c.Weight, c.Contribution, c.Status)))
		}
	}
	if len(r.Rules.SkippedRuleIDs) > 0 {
		fmt.Println(dimStyle.Render(fmt.Sprintf(
			"    skipped rules: %s", strings.Join(r.Rules.SkippedRuleIDs, ", "))))
	}
}

// printSummaryLine prints the closing totals line.
func (f *ConsoleFormatter) printSummaryLine(reports []evaluate.CountryReport) {
	scored := 0
	for _, r := range reports {
		if r.FinalScore != nil {
			scored++
		}
	}

	summary := fmt.Sprintf("%d countries scored", scored)
	if missing := len(reports) - scored; missing > 0 {
		summary += redStyle.Render(fmt.Sprintf(", %d without data", missing))
	}
	fmt.Printf("\n%s\n", boldStyle.Render(summary))
}

// FormatLeaders prints a ranked leaderboard for one metric.
func (f *ConsoleFormatter) FormatLeaders(leaders leaderboard.Leaders) error {
	if f.quiet {
		return nil
	}

	fmt.Printf("\n%s\n", boldStyle.Render(f.cat.Label(leaders.MetricID)))
	if len(leaders.Entries) == 0 {
		fmt.Println(dimStyle.Render("  no countries with data"))
		return nil
	}

	for i, e := range leaders.Entries {
		fmt.Printf("  %d. %-24s %6.1f %s\n",
			i+1, truncate(e.CountryName, 24), e.Normalized,
			dimStyle.Render(fmt.Sprintf("(raw: %v)", e.RawValue)))
	}
	return nil
}

// nameColumnWidth sizes the country name column to its contents, capped to
// a third of the terminal width.
func (f *ConsoleFormatter) nameColumnWidth(reports []evaluate.CountryReport) int {
	width := 0
	for _, r := range reports {
		if len(r.CountryName) > width {
			width = len(r.CountryName)
		}
	}
	if limit := terminalWidth() / 3; width > limit {
		width = limit
	}
	if width < 8 {
		width = 8
	}
	return width
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
