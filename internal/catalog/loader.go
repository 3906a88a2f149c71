package catalog

import (
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/resilscore/resilscore/internal/schema"
	"github.com/resilscore/resilscore/internal/types"
)

// Load reads a catalog YAML file, validates it against the embedded schema,
// applies default pillar weights, and runs semantic validation. Warnings are
// returned alongside the catalog; error-severity issues fail the load.
func Load(path string) (*Catalog, []types.Issue, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading catalog file: %w", err)
	}
	return Parse(content)
}

// Parse decodes and validates catalog YAML content.
func Parse(content []byte) (*Catalog, []types.Issue, error) {
	var raw map[string]any
	if err := yamlv3.Unmarshal(content, &raw); err != nil {
		return nil, nil, fmt.Errorf("error parsing catalog: %w", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, nil, err
	}
	if err := validator.ValidateCatalog(raw); err != nil {
		return nil, nil, fmt.Errorf("invalid catalog: %w", err)
	}

	var cat Catalog
	if err := yamlv3.Unmarshal(content, &cat); err != nil {
		return nil, nil, fmt.Errorf("error decoding catalog: %w", err)
	}

	applyDefaultWeights(&cat)

	issues := cat.Validate()
	if HasErrors(issues) {
		return nil, issues, fmt.Errorf("catalog has configuration errors")
	}
	return &cat, issues, nil
}
