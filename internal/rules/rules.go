// Package rules implements the prioritized conditional rule engine that
// post-processes a country's maturity score. Rule sets are validated once
// at load time and treated as read-only during evaluation.
package rules

import "fmt"

// ConditionType identifies how a rule condition is evaluated.
type ConditionType string

// Condition type constants.
const (
	CondThreshold ConditionType = "threshold"
	CondBoolean   ConditionType = "boolean"
	CondEnum      ConditionType = "enum"
	CondCompound  ConditionType = "compound"
	CondBase      ConditionType = "base"
)

// ImpactType identifies the operation a rule performs on the running score.
type ImpactType string

// Impact type constants.
const (
	ImpactAdd      ImpactType = "add"
	ImpactMultiply ImpactType = "multiply"
	ImpactCap      ImpactType = "cap"
	ImpactSet      ImpactType = "set"
)

// Compound operators.
const (
	OpAnd = "and"
	OpOr  = "or"
)

// Condition is one node of a condition tree. The Type tag selects which
// fields are meaningful: threshold uses Field/Operator/Value, boolean uses
// Field/Expected, enum uses Field/Match, compound uses Op/Conditions, and
// base uses nothing.
type Condition struct {
	Type ConditionType `yaml:"type"`

	Field    string  `yaml:"field,omitempty"`
	Operator string  `yaml:"operator,omitempty"`
	Value    float64 `yaml:"value,omitempty"`
	Expected bool    `yaml:"expected,omitempty"`
	Match    string  `yaml:"match,omitempty"`

	Op         string      `yaml:"op,omitempty"`
	Conditions []Condition `yaml:"conditions,omitempty"`
}

// Rule is one conditional adjustment to the maturity score. Lower Priority
// applies earlier; equal priorities keep list order.
type Rule struct {
	ID        string     `yaml:"id"`
	Priority  int        `yaml:"priority"`
	Condition Condition  `yaml:"condition"`
	Impact    ImpactType `yaml:"impact"`
	Value     float64    `yaml:"value"`
	Active    bool       `yaml:"active"`
}

var knownOperators = map[string]bool{
	"<": true, "<=": true, ">": true, ">=": true, "==": true,
}

// Validate checks every rule for unknown condition or impact types. This is
// the fail-fast gate: a rule set that passes here will never surface a type
// error during evaluation.
func Validate(ruleList []Rule) error {
	seen := make(map[string]bool)
	for i, r := range ruleList {
		if r.ID == "" {
			return fmt.Errorf("rule %d is missing an id", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true

		switch r.Impact {
		case ImpactAdd, ImpactMultiply, ImpactCap, ImpactSet:
		default:
			return fmt.Errorf("rule %q has unknown impact type %q", r.ID, r.Impact)
		}

		if err := validateCondition(r.Condition); err != nil {
			return fmt.Errorf("rule %q: %w", r.ID, err)
		}
	}
	return nil
}

func validateCondition(c Condition) error {
	switch c.Type {
	case CondThreshold:
		if c.Field == "" {
			return fmt.Errorf("threshold condition requires a field")
		}
		if !knownOperators[c.Operator] {
			return fmt.Errorf("threshold condition has unknown operator %q", c.Operator)
		}
	case CondBoolean, CondEnum:
		if c.Field == "" {
			return fmt.Errorf("%s condition requires a field", c.Type)
		}
	case CondCompound:
		if c.Op != OpAnd && c.Op != OpOr {
			return fmt.Errorf("compound condition has unknown operator %q", c.Op)
		}
		if len(c.Conditions) == 0 {
			return fmt.Errorf("compound condition has no nested conditions")
		}
		for _, nested := range c.Conditions {
			if err := validateCondition(nested); err != nil {
				return err
			}
		}
	case CondBase:
	default:
		return fmt.Errorf("unknown condition type %q", c.Type)
	}
	return nil
}
