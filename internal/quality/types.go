package quality

import (
	"fmt"
	"sort"
	"strings"

	"dq-backend/internal/dataset"
)

// TypeMismatch describes a column whose non-missing cells carry more than
// one runtime type.
type TypeMismatch struct {
	DominantType string           `json:"dominant_type"`
	TypeCounts   map[string]int   `json:"type_counts"`
	MixedIndices map[string][]int `json:"mixed_indices"`
}

// DetectTypeMismatches profiles each column by per-cell runtime type.
// The dominant type is the tag with the highest count, first-seen order
// breaking ties. Columns with a single tag are clean by definition, even
// when that tag looks wrong for the data; typing here is purely
// empirical. Columns whose cells are all missing are skipped.
//
// Int and float cells share the "numeric" tag: a column of whole numbers
// with the odd decimal is not mixed.
func DetectTypeMismatches(ds *dataset.Dataset) map[string]TypeMismatch {
	mismatches := make(map[string]TypeMismatch)

	for col, name := range ds.Columns {
		counts := map[string]int{}
		var order []string // tags in first-seen order, for the tie-break
		tags := make([]string, ds.NumRows())

		for r := 0; r < ds.NumRows(); r++ {
			c := ds.Cell(r, col)
			if c.IsNull() {
				continue
			}
			tag := profileTag(c)
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
			tags[r] = tag
		}
		if len(counts) < 2 {
			continue
		}

		dominant := order[0]
		for _, tag := range order {
			if counts[tag] > counts[dominant] {
				dominant = tag
			}
		}

		mixed := map[string][]int{}
		for r, tag := range tags {
			if tag != "" && tag != dominant {
				mixed[tag] = append(mixed[tag], r)
			}
		}

		mismatches[name] = TypeMismatch{
			DominantType: dominant,
			TypeCounts:   counts,
			MixedIndices: mixed,
		}
	}
	return mismatches
}

// profileTag folds the cell kind into the profiler's type-tag space.
func profileTag(c dataset.Cell) string {
	switch c.Kind {
	case dataset.KindInt, dataset.KindFloat:
		return "numeric"
	default:
		return c.TypeName()
	}
}

// FormatTypeMismatches renders one summary line per flagged column, in
// column order, or the NoIssues sentinel.
func FormatTypeMismatches(ds *dataset.Dataset, mismatches map[string]TypeMismatch) interface{} {
	if len(mismatches) == 0 {
		return NoIssues
	}
	var lines []string
	for _, name := range ds.Columns {
		info, ok := mismatches[name]
		if !ok {
			continue
		}
		parts := make([]string, 0, len(info.TypeCounts))
		for _, tag := range typeTagOrder(info) {
			parts = append(parts, fmt.Sprintf("%s (%d)", tag, info.TypeCounts[tag]))
		}
		lines = append(lines, fmt.Sprintf("%s: Mixed types [%s]", name, strings.Join(parts, ", ")))
	}
	return lines
}

// typeTagOrder lists tags dominant-first, then by descending count with a
// name tie-break, so summaries are deterministic.
func typeTagOrder(info TypeMismatch) []string {
	tags := make([]string, 0, len(info.TypeCounts))
	for tag := range info.TypeCounts {
		if tag != info.DominantType {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		ci, cj := info.TypeCounts[tags[i]], info.TypeCounts[tags[j]]
		if ci != cj {
			return ci > cj
		}
		return tags[i] < tags[j]
	})
	return append([]string{info.DominantType}, tags...)
}
