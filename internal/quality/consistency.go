package quality

import (
	"fmt"

	"dq-backend/internal/dataset"
)

// ConsistencyRule is a named row-level predicate. Predicates return an
// error when they cannot be evaluated for a row; that aborts the one rule
// without touching the others.
type ConsistencyRule struct {
	Name      string
	Predicate func(dataset.Row) (bool, error)
}

// RuleFailures reports rows failing one consistency rule.
type RuleFailures struct {
	Count   int                      `json:"count"`
	Indices []int                    `json:"indices"`
	Rows    []map[string]interface{} `json:"rows"`
}

// RuleError reports a rule whose predicate could not be evaluated.
type RuleError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CheckConsistency evaluates each rule against every row in order. A
// predicate error is recorded as that rule's result; remaining rules
// still run. Returns the NoIssues sentinel when every rule passed
// everywhere.
func CheckConsistency(ds *dataset.Dataset, rules []ConsistencyRule) interface{} {
	issues := make(map[string]interface{})

	for _, rule := range rules {
		failures := RuleFailures{Indices: []int{}, Rows: []map[string]interface{}{}}
		var ruleErr error

		for r := 0; r < ds.NumRows(); r++ {
			ok, err := rule.Predicate(ds.Row(r))
			if err != nil {
				ruleErr = err
				break
			}
			if ok {
				continue
			}
			failures.Count++
			failures.Indices = append(failures.Indices, r)
			failures.Rows = append(failures.Rows, rowValues(ds, r))
		}

		if ruleErr != nil {
			issues[rule.Name] = RuleError{
				Error:   ruleErr.Error(),
				Message: fmt.Sprintf("Error checking rule: %s", rule.Name),
			}
			continue
		}
		if failures.Count > 0 {
			issues[rule.Name] = failures
		}
	}

	if len(issues) == 0 {
		return NoIssues
	}
	return issues
}

func rowValues(ds *dataset.Dataset, r int) map[string]interface{} {
	row := make(map[string]interface{}, ds.NumCols())
	for col, name := range ds.Columns {
		row[name] = safeCellValue(ds.Cell(r, col))
	}
	return row
}
