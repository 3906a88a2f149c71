package record

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/resilscore/resilscore/internal/schema"
)

// countryPatterns defines where country documents are discovered, relative
// to the data directory. Patterns are matched in order; a file is loaded at
// most once.
var countryPatterns = []string{
	"countries/**/*.yaml",
	"countries/**/*.yml",
	"*.country.yaml",
}

// Discover returns the sorted, de-duplicated list of country document paths
// under dataDir.
func Discover(dataDir string) ([]string, error) {
	fsys := os.DirFS(dataDir)
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range countryPatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error matching pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			full := filepath.Join(dataDir, m)
			if seen[full] {
				continue
			}
			seen[full] = true
			paths = append(paths, full)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadFile reads and validates a single country document.
func LoadFile(path string, validator *schema.Validator) (Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("error reading country file: %w", err)
	}

	var raw map[string]any
	if err := yamlv3.Unmarshal(content, &raw); err != nil {
		return Record{}, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := validator.ValidateCountry(raw); err != nil {
		return Record{}, fmt.Errorf("invalid country document %s: %w", path, err)
	}

	var rec Record
	if err := yamlv3.Unmarshal(content, &rec); err != nil {
		return Record{}, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return rec, nil
}

// LoadAll discovers and loads every country document under dataDir, sorted
// by country id. Duplicate country ids fail the load.
func LoadAll(dataDir string) ([]Record, error) {
	paths, err := Discover(dataDir)
	if err != nil {
		return nil, err
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	var records []Record
	for _, path := range paths {
		rec, err := LoadFile(path, validator)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[rec.ID]; ok {
			return nil, fmt.Errorf("duplicate country id %q in %s and %s", rec.ID, prev, path)
		}
		seen[rec.ID] = path
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
