package rules

import (
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/resilscore/resilscore/internal/schema"
)

// ruleSetFile is the on-disk shape of a rule-set document.
type ruleSetFile struct {
	Rules []ruleFile `yaml:"rules"`
}

// ruleFile mirrors Rule but defaults Active to true when omitted.
type ruleFile struct {
	ID        string     `yaml:"id"`
	Priority  int        `yaml:"priority"`
	Condition Condition  `yaml:"condition"`
	Impact    ImpactType `yaml:"impact"`
	Value     float64    `yaml:"value"`
	Active    *bool      `yaml:"active"`
}

// Load reads a rule-set YAML file, validates it against the embedded schema,
// and rejects unknown condition or impact types before returning.
func Load(path string) ([]Rule, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}
	return Parse(content)
}

// Parse decodes and validates rule-set YAML content.
func Parse(content []byte) ([]Rule, error) {
	var raw map[string]any
	if err := yamlv3.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("error parsing rules: %w", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateRuleSet(raw); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	var file ruleSetFile
	if err := yamlv3.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("error decoding rules: %w", err)
	}

	ruleList := make([]Rule, 0, len(file.Rules))
	for _, rf := range file.Rules {
		active := true
		if rf.Active != nil {
			active = *rf.Active
		}
		ruleList = append(ruleList, Rule{
			ID:        rf.ID,
			Priority:  rf.Priority,
			Condition: rf.Condition,
			Impact:    rf.Impact,
			Value:     rf.Value,
			Active:    active,
		})
	}

	if err := Validate(ruleList); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}
	return ruleList, nil
}
