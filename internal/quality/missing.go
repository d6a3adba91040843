package quality

import "dq-backend/internal/dataset"

// NoIssues is the sentinel reported by a detector that found nothing.
// Callers rely on receiving the literal string rather than an empty
// collection.
const NoIssues = "None"

// MissingColumn reports the missing cells of one column. Key spellings
// match the report wire format.
type MissingColumn struct {
	Column            string  `json:"Column"`
	MissingCount      int     `json:"Missing_Count"`
	MissingPercentage float64 `json:"Missing_Percentage"`
}

// DetectMissingValues counts missing cells per column. Columns without
// missing cells are omitted; when no column has any, the NoIssues
// sentinel is returned instead of an empty list.
func DetectMissingValues(ds *dataset.Dataset) interface{} {
	rows := ds.NumRows()
	var report []MissingColumn
	for col, name := range ds.Columns {
		count := 0
		for r := 0; r < rows; r++ {
			if ds.Cell(r, col).IsNull() {
				count++
			}
		}
		if count == 0 {
			continue
		}
		pct := 0.0
		if rows > 0 {
			pct = float64(count) / float64(rows) * 100
		}
		report = append(report, MissingColumn{
			Column:            name,
			MissingCount:      count,
			MissingPercentage: pct,
		})
	}
	if len(report) == 0 {
		return NoIssues
	}
	return report
}
