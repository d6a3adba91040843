package config

import (
	"fmt"
	"os"

	"dq-backend/internal/quality"

	"gopkg.in/yaml.v3"
)

// RuleSet is the server-side rule configuration, optionally loaded from a
// YAML file. When present it replaces the built-in defaults for requests
// that do not carry their own rules.
type RuleSet struct {
	// ValidationRules maps column names to regular expressions.
	ValidationRules map[string]string `yaml:"validation_rules"`
	// ConsistencyRules maps rule names to closed comparator specs.
	ConsistencyRules map[string]quality.RuleSpec `yaml:"consistency_rules"`
}

// LoadRuleSet parses a rule file. An empty path yields an empty set.
func LoadRuleSet(path string) (*RuleSet, error) {
	rs := &RuleSet{}
	if path == "" {
		return rs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	// Fail at startup, not per request, when a spec is malformed.
	if _, err := quality.CompileRuleSpecs(rs.ConsistencyRules); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rs, nil
}

// Consistency compiles the configured consistency rules, or nil when the
// file declared none so callers fall back to the engine defaults.
func (rs *RuleSet) Consistency() []quality.ConsistencyRule {
	if len(rs.ConsistencyRules) == 0 {
		return nil
	}
	rules, err := quality.CompileRuleSpecs(rs.ConsistencyRules)
	if err != nil {
		// Validated at load time.
		return nil
	}
	return rules
}
