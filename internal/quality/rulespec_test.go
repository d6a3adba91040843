package quality

import (
	"testing"

	"dq-backend/internal/dataset"
)

func TestCompileRuleSpecRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec RuleSpec
	}{
		{"unknown operator", RuleSpec{Column: "Age", Operator: "~=", Value: 5}},
		{"eval-style operator", RuleSpec{Column: "Age", Operator: "in", Value: 5}},
		{"missing column", RuleSpec{Operator: "==", Value: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CompileRuleSpec("r", tt.spec); err == nil {
				t.Errorf("CompileRuleSpec(%+v) succeeded, want error", tt.spec)
			}
		})
	}
}

func TestCompiledRuleNumericComparison(t *testing.T) {
	ds := makeDataset(t, []string{"Age"}, [][]dataset.Cell{
		{dataset.IntCell(30)},
		{dataset.IntCell(150)},
		{dataset.StringCell("42")},
		{dataset.StringCell("oops")},
		{dataset.Null()},
	})

	rule, err := CompileRuleSpec("max age", RuleSpec{Column: "Age", Operator: "<=", Value: 120})
	if err != nil {
		t.Fatalf("CompileRuleSpec: %v", err)
	}

	// Numeric strings coerce; anything that cannot coerce is NaN and NaN
	// fails every comparison.
	want := []bool{true, false, true, false, false}
	for r, w := range want {
		got, err := rule.Predicate(ds.Row(r))
		if err != nil {
			t.Fatalf("row %d: %v", r, err)
		}
		if got != w {
			t.Errorf("row %d: predicate = %v, want %v", r, got, w)
		}
	}
}

func TestCompiledRuleStringEquality(t *testing.T) {
	ds := makeDataset(t, []string{"status"}, [][]dataset.Cell{
		{dataset.StringCell("active")},
		{dataset.StringCell("closed")},
	})

	rule, err := CompileRuleSpec("is active", RuleSpec{Column: "status", Operator: "==", Value: "active"})
	if err != nil {
		t.Fatalf("CompileRuleSpec: %v", err)
	}
	if ok, _ := rule.Predicate(ds.Row(0)); !ok {
		t.Error("row 0 should pass")
	}
	if ok, _ := rule.Predicate(ds.Row(1)); ok {
		t.Error("row 1 should fail")
	}
}

func TestCompiledRuleOrderingNeedsNumericLiteral(t *testing.T) {
	ds := makeDataset(t, []string{"status"}, [][]dataset.Cell{
		{dataset.StringCell("active")},
	})

	rule, err := CompileRuleSpec("bad", RuleSpec{Column: "status", Operator: "<", Value: "zzz"})
	if err != nil {
		t.Fatalf("CompileRuleSpec: %v", err)
	}
	if _, err := rule.Predicate(ds.Row(0)); err == nil {
		t.Error("ordering comparison against a non-numeric literal should error at evaluation")
	}
}

func TestCompiledRuleAbsentColumnPasses(t *testing.T) {
	ds := makeDataset(t, []string{"other"}, [][]dataset.Cell{
		{dataset.IntCell(1)},
	})

	rule, err := CompileRuleSpec("r", RuleSpec{Column: "Age", Operator: ">", Value: 0})
	if err != nil {
		t.Fatalf("CompileRuleSpec: %v", err)
	}
	if ok, err := rule.Predicate(ds.Row(0)); err != nil || !ok {
		t.Errorf("predicate = (%v, %v), want pass for absent column", ok, err)
	}
}

func TestCompileRuleSpecsSortedAndFailFast(t *testing.T) {
	specs := map[string]RuleSpec{
		"b rule": {Column: "x", Operator: "==", Value: 1},
		"a rule": {Column: "y", Operator: "!=", Value: 2},
	}
	rules, err := CompileRuleSpecs(specs)
	if err != nil {
		t.Fatalf("CompileRuleSpecs: %v", err)
	}
	if len(rules) != 2 || rules[0].Name != "a rule" || rules[1].Name != "b rule" {
		t.Errorf("rule order = %v, want sorted by name", []string{rules[0].Name, rules[1].Name})
	}

	specs["c rule"] = RuleSpec{Column: "z", Operator: "??", Value: 3}
	if _, err := CompileRuleSpecs(specs); err == nil {
		t.Error("expected error for spec set containing a bad operator")
	}
}
