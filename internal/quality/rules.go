package quality

import "dq-backend/internal/dataset"

// allowedStrings is the membership list for the default "String in set"
// rule.
var allowedStrings = []string{"apple", "banana", "cherry", "date", "elderberry"}

// DefaultConsistencyRules returns the built-in rule set used when the
// caller supplies none. Each rule passes when its column is absent, so
// the set is reusable across datasets with different schemas. Cells that
// fail numeric coercion come back as NaN and therefore fail every bound
// check.
func DefaultConsistencyRules() []ConsistencyRule {
	return []ConsistencyRule{
		{
			Name: "Valid Age",
			Predicate: func(row dataset.Row) (bool, error) {
				c, ok := row.Get("Age")
				if !ok {
					return true, nil
				}
				v := c.Numeric()
				return v >= 0 && v <= 120, nil
			},
		},
		{
			Name: "Salary Non-negative",
			Predicate: func(row dataset.Row) (bool, error) {
				c, ok := row.Get("Salary")
				if !ok {
					return true, nil
				}
				return c.Numeric() >= 0, nil
			},
		},
		{
			Name: "String in set",
			Predicate: func(row dataset.Row) (bool, error) {
				c, ok := row.Get("string")
				if !ok {
					return true, nil
				}
				if c.Kind != dataset.KindString {
					return false, nil
				}
				for _, s := range allowedStrings {
					if c.Str == s {
						return true, nil
					}
				}
				return false, nil
			},
		},
	}
}
