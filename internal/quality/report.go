package quality

import "dq-backend/internal/dataset"

// FileInfo is metadata about the analyzed source, supplied by the caller.
// The engine reports it verbatim and never derives it itself.
type FileInfo struct {
	Filename    string   `json:"filename"`
	Rows        int      `json:"rows"`
	Columns     int      `json:"columns"`
	ColumnNames []string `json:"column_names"`
}

// Options selects the rule inputs for one analysis call. A nil field
// skips that detector's rule-driven part without affecting the others.
type Options struct {
	// ValidationRules maps column names to regular expressions.
	ValidationRules map[string]string
	// ConsistencyRules is the ordered rule set; nil selects the default
	// set, an empty non-nil slice runs none.
	ConsistencyRules []ConsistencyRule
}

// Service runs data quality checks over in-memory datasets. It holds no
// state; any number of Run calls may proceed concurrently as long as each
// owns its dataset.
type Service struct{}

// NewService creates a quality check service.
func NewService() *Service {
	return &Service{}
}

// Run executes every detector independently, merges their results into
// one report tree, appends the caller's file info, and normalizes the
// whole tree exactly once. The dataset is only read. Any error is a fatal
// failure of the whole analysis; partial reports are never returned.
func (s *Service) Run(ds *dataset.Dataset, opts Options, info FileInfo) (map[string]interface{}, error) {
	results := make(map[string]interface{})

	results["missing_values"] = missingTree(DetectMissingValues(ds))

	mismatches := DetectTypeMismatches(ds)
	results["data_type_mismatches"] = map[string]interface{}{
		"detailed": mismatchTree(mismatches),
		"summary":  summaryTree(FormatTypeMismatches(ds, mismatches)),
	}

	dups := DetectDuplicates(ds)
	results["duplicates"] = map[string]interface{}{
		"count":   dups.Count,
		"indices": intTree(dups.Indices),
	}

	invalid, err := DetectInvalidInputs(ds, opts.ValidationRules)
	if err != nil {
		return nil, err
	}
	results["invalid_inputs"] = invalidTree(invalid)

	rules := opts.ConsistencyRules
	if rules == nil {
		rules = DefaultConsistencyRules()
	}
	results["consistency_issues"] = consistencyTree(CheckConsistency(ds, rules))

	results["file_info"] = map[string]interface{}{
		"filename":     info.Filename,
		"rows":         info.Rows,
		"columns":      info.Columns,
		"column_names": stringTree(info.ColumnNames),
	}

	return Clean(results).(map[string]interface{}), nil
}

// The detectors return typed results; the report tree is dynamic JSON.
// These helpers lower one into the other so the normalizer sees only
// maps, slices, and primitives.

func missingTree(v interface{}) interface{} {
	report, ok := v.([]MissingColumn)
	if !ok {
		return v // NoIssues sentinel
	}
	out := make([]interface{}, len(report))
	for i, m := range report {
		out[i] = map[string]interface{}{
			"Column":             m.Column,
			"Missing_Count":      m.MissingCount,
			"Missing_Percentage": m.MissingPercentage,
		}
	}
	return out
}

func mismatchTree(mismatches map[string]TypeMismatch) map[string]interface{} {
	out := make(map[string]interface{}, len(mismatches))
	for col, m := range mismatches {
		counts := make(map[string]interface{}, len(m.TypeCounts))
		for tag, n := range m.TypeCounts {
			counts[tag] = n
		}
		mixed := make(map[string]interface{}, len(m.MixedIndices))
		for tag, idx := range m.MixedIndices {
			mixed[tag] = intTree(idx)
		}
		out[col] = map[string]interface{}{
			"dominant_type": m.DominantType,
			"type_counts":   counts,
			"mixed_indices": mixed,
		}
	}
	return out
}

func summaryTree(v interface{}) interface{} {
	lines, ok := v.([]string)
	if !ok {
		return v
	}
	return stringTree(lines)
}

func invalidTree(v interface{}) interface{} {
	invalid, ok := v.(map[string]InvalidColumn)
	if !ok {
		return v
	}
	out := make(map[string]interface{}, len(invalid))
	for col, entry := range invalid {
		out[col] = map[string]interface{}{
			"count":   entry.Count,
			"indices": intTree(entry.Indices),
			"values":  entry.Values,
		}
	}
	return out
}

func consistencyTree(v interface{}) interface{} {
	issues, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	out := make(map[string]interface{}, len(issues))
	for name, res := range issues {
		switch r := res.(type) {
		case RuleFailures:
			rows := make([]interface{}, len(r.Rows))
			for i, row := range r.Rows {
				rows[i] = row
			}
			out[name] = map[string]interface{}{
				"count":   r.Count,
				"indices": intTree(r.Indices),
				"rows":    rows,
			}
		case RuleError:
			out[name] = map[string]interface{}{
				"error":   r.Error,
				"message": r.Message,
			}
		default:
			out[name] = res
		}
	}
	return out
}

func intTree(ns []int) []interface{} {
	out := make([]interface{}, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

func stringTree(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
