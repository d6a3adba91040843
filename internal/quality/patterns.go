package quality

import (
	"fmt"
	"math"
	"regexp"

	"dq-backend/internal/dataset"
)

// InvalidColumn reports cells of one column that failed its validation
// pattern. Values carry the original cell values, with non-finite floats
// pre-stringified so they stay distinguishable after normalization.
type InvalidColumn struct {
	Count   int           `json:"count"`
	Indices []int         `json:"indices"`
	Values  []interface{} `json:"values"`
}

// DetectInvalidInputs validates columns against caller-supplied regular
// expressions. Every cell is stringified (missing included) and tested as
// a full-string match. Rule columns absent from the dataset are ignored.
// An uncompilable pattern fails the whole analysis.
func DetectInvalidInputs(ds *dataset.Dataset, rules map[string]string) (interface{}, error) {
	invalid := make(map[string]InvalidColumn)

	for column, pattern := range rules {
		col := ds.ColumnIndex(column)
		if col < 0 {
			continue
		}
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for column %q: %w", column, err)
		}

		entry := InvalidColumn{Indices: []int{}, Values: []interface{}{}}
		for r := 0; r < ds.NumRows(); r++ {
			c := ds.Cell(r, col)
			if re.MatchString(c.Display()) {
				continue
			}
			entry.Count++
			entry.Indices = append(entry.Indices, r)
			entry.Values = append(entry.Values, safeCellValue(c))
		}
		if entry.Count > 0 {
			invalid[column] = entry
		}
	}

	if len(invalid) == 0 {
		return NoIssues, nil
	}
	return invalid, nil
}

// safeCellValue returns the cell value with non-finite floats already in
// string form, matching what the report promises before normalization.
func safeCellValue(c dataset.Cell) interface{} {
	if c.Kind == dataset.KindFloat && (math.IsNaN(c.Float) || math.IsInf(c.Float, 0)) {
		return c.Display()
	}
	return c.Value()
}
