package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/resilscore/resilscore/internal/evaluate"
	"github.com/resilscore/resilscore/internal/leaderboard"
)

// JSONFormatter formats results as JSON for export consumers.
type JSONFormatter struct {
	outputFile string // empty writes to stdout
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter(outputFile string) *JSONFormatter {
	return &JSONFormatter{outputFile: outputFile}
}

// JSONHeader identifies the producing tool.
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONReport is the export shape for a batch evaluation.
type JSONReport struct {
	Header  JSONHeader               `json:"header"`
	Results []evaluate.CountryReport `json:"results"`
}

// JSONLeadersReport is the export shape for a leaderboard query.
type JSONLeadersReport struct {
	Header  JSONHeader          `json:"header"`
	Leaders leaderboard.Leaders `json:"leaders"`
}

func header() JSONHeader {
	return JSONHeader{
		Tool:      "resilscore",
		Version:   "1.0.0",
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// FormatReports writes the batch evaluation results as indented JSON.
func (f *JSONFormatter) FormatReports(reports []evaluate.CountryReport) error {
	return f.write(JSONReport{Header: header(), Results: reports})
}

// FormatLeaders writes a leaderboard result as indented JSON.
func (f *JSONFormatter) FormatLeaders(leaders leaderboard.Leaders) error {
	return f.write(JSONLeadersReport{Header: header(), Leaders: leaders})
}

func (f *JSONFormatter) write(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	data = append(data, '\n')

	if f.outputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(f.outputFile, data, 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}
	return nil
}
