package rules

import (
	"fmt"
	"strconv"

	"github.com/resilscore/resilscore/internal/record"
)

// eval evaluates a condition tree against a country record by structural
// recursion. An error means the condition could not be resolved for this
// record (missing field, wrong value type); the caller skips the rule and
// reports it.
func eval(c Condition, rec record.Record) (bool, error) {
	switch c.Type {
	case CondBase:
		return true, nil

	case CondThreshold:
		raw, ok := rec.Lookup(c.Field)
		if !ok {
			return false, fmt.Errorf("field %q not found", c.Field)
		}
		v, ok := toFloat(raw)
		if !ok {
			return false, fmt.Errorf("field %q is not numeric", c.Field)
		}
		return compare(v, c.Operator, c.Value), nil

	case CondBoolean:
		raw, ok := rec.Lookup(c.Field)
		if !ok {
			return false, fmt.Errorf("field %q not found", c.Field)
		}
		b, ok := raw.(bool)
		if !ok {
			return false, fmt.Errorf("field %q is not a boolean", c.Field)
		}
		return b == c.Expected, nil

	case CondEnum:
		raw, ok := rec.Lookup(c.Field)
		if !ok {
			return false, fmt.Errorf("field %q not found", c.Field)
		}
		s, ok := raw.(string)
		if !ok {
			return false, fmt.Errorf("field %q is not a string", c.Field)
		}
		return s == c.Match, nil

	case CondCompound:
		return evalCompound(c, rec)

	default:
		// Unreachable for validated rule sets.
		return false, fmt.Errorf("unknown condition type %q", c.Type)
	}
}

// evalCompound combines nested results with AND/OR. Children are evaluated
// in order; an unresolvable child skips the whole rule so that a partial
// answer never fires an impact.
func evalCompound(c Condition, rec record.Record) (bool, error) {
	result := c.Op == OpAnd
	for _, nested := range c.Conditions {
		ok, err := eval(nested, rec)
		if err != nil {
			return false, err
		}
		if c.Op == OpAnd {
			result = result && ok
		} else {
			result = result || ok
		}
	}
	return result, nil
}

func compare(v float64, operator string, target float64) bool {
	switch operator {
	case "<":
		return v < target
	case "<=":
		return v <= target
	case ">":
		return v > target
	case ">=":
		return v >= target
	case "==":
		return v == target
	default:
		return false
	}
}

// toFloat coerces the numeric types the YAML decoder produces, plus numeric
// strings, into a float64.
func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
