package quality

import (
	"fmt"
	"sort"
	"strconv"

	"dq-backend/internal/dataset"
)

// RuleSpec is the closed form in which untrusted callers describe a
// consistency rule: one column, one comparator, one literal. Specs are
// interpreted by a fixed evaluator; there is no expression language.
type RuleSpec struct {
	Column   string      `json:"column" yaml:"column"`
	Operator string      `json:"operator" yaml:"operator"`
	Value    interface{} `json:"value" yaml:"value"`
}

// CompileRuleSpec turns a spec into a consistency rule. Comparisons are
// numeric when the literal is numeric (cells are coerced; NaN fails every
// comparison), and string equality otherwise. A rule whose column is
// absent from a row passes. Unknown comparators are rejected.
func CompileRuleSpec(name string, spec RuleSpec) (ConsistencyRule, error) {
	if spec.Column == "" {
		return ConsistencyRule{}, fmt.Errorf("rule %q: column is required", name)
	}
	switch spec.Operator {
	case "==", "!=", "<", ">", "<=", ">=":
	default:
		return ConsistencyRule{}, fmt.Errorf("rule %q: unsupported operator %q", name, spec.Operator)
	}

	lit, numeric := literalFloat(spec.Value)

	predicate := func(row dataset.Row) (bool, error) {
		c, ok := row.Get(spec.Column)
		if !ok {
			return true, nil
		}
		if numeric {
			return compareFloat(c.Numeric(), spec.Operator, lit), nil
		}
		switch spec.Operator {
		case "==":
			return c.Display() == fmt.Sprintf("%v", spec.Value), nil
		case "!=":
			return c.Display() != fmt.Sprintf("%v", spec.Value), nil
		default:
			return false, fmt.Errorf("operator %q needs a numeric value", spec.Operator)
		}
	}

	return ConsistencyRule{Name: name, Predicate: predicate}, nil
}

// CompileRuleSpecs compiles a named spec map into an ordered rule list.
// Names are emitted in sorted order so reports are deterministic.
func CompileRuleSpecs(specs map[string]RuleSpec) ([]ConsistencyRule, error) {
	rules := make([]ConsistencyRule, 0, len(specs))
	for _, name := range sortedKeys(specs) {
		rule, err := CompileRuleSpec(name, specs[name])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func sortedKeys(specs map[string]RuleSpec) []string {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func literalFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func compareFloat(a float64, op string, b float64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	case ">=":
		return a >= b
	}
	return false
}
