package quality

import (
	"strings"

	"dq-backend/internal/dataset"
)

// DuplicateReport lists full-row duplicates. Only occurrences after the
// first instance of a value pattern are flagged; the first one never is.
type DuplicateReport struct {
	Count   int   `json:"count"`
	Indices []int `json:"indices"`
}

// DetectDuplicates finds rows identical by value, missing markers
// included, to an earlier row.
func DetectDuplicates(ds *dataset.Dataset) DuplicateReport {
	seen := make(map[string]bool, ds.NumRows())
	report := DuplicateReport{Indices: []int{}}

	for r := 0; r < ds.NumRows(); r++ {
		var key strings.Builder
		for col := 0; col < ds.NumCols(); col++ {
			key.WriteString(ds.Cell(r, col).Key())
			key.WriteByte('|')
		}
		k := key.String()
		if seen[k] {
			report.Count++
			report.Indices = append(report.Indices, r)
		} else {
			seen[k] = true
		}
	}
	return report
}
