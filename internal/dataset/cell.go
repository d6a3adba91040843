package dataset

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the runtime type of a cell.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindOther
)

// Cell is a single tabular value. A cell either holds one of the typed
// payloads or is missing (KindNull).
type Cell struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	Str   string // payload for KindString and KindOther
}

func Null() Cell                 { return Cell{Kind: KindNull} }
func IntCell(v int64) Cell       { return Cell{Kind: KindInt, Int: v} }
func FloatCell(v float64) Cell   { return Cell{Kind: KindFloat, Float: v} }
func BoolCell(v bool) Cell       { return Cell{Kind: KindBool, Bool: v} }
func StringCell(v string) Cell   { return Cell{Kind: KindString, Str: v} }
func OtherCell(v string) Cell    { return Cell{Kind: KindOther, Str: v} }

// IsNull reports whether the cell is missing.
func (c Cell) IsNull() bool { return c.Kind == KindNull }

// TypeName returns the type tag used by the type profiler.
func (c Cell) TypeName() string {
	switch c.Kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindOther:
		return "other"
	default:
		return "null"
	}
}

// Value returns the cell payload as a dynamic value for report trees.
// Missing cells map to nil.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case KindInt:
		return c.Int
	case KindFloat:
		return c.Float
	case KindBool:
		return c.Bool
	case KindString, KindOther:
		return c.Str
	default:
		return nil
	}
}

// Display returns the string form used for pattern validation. Missing
// cells render as "NaN"; non-finite floats use the JSON-safe sentinels.
func (c Cell) Display() string {
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return formatFloat(c.Float)
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindString, KindOther:
		return c.Str
	default:
		return "NaN"
	}
}

// Key returns a representation that is equal exactly when two cells hold
// the same kind and value. Used for duplicate-row detection.
func (c Cell) Key() string {
	return fmt.Sprintf("%d:%q", c.Kind, c.Display())
}

// Numeric coerces the cell to a float64 the way a lenient numeric cast
// would: ints and floats convert directly, bools become 0/1, numeric
// strings parse, and everything else (including missing) yields NaN.
func (c Cell) Numeric() float64 {
	switch c.Kind {
	case KindInt:
		return float64(c.Int)
	case KindFloat:
		return c.Float
	case KindBool:
		if c.Bool {
			return 1
		}
		return 0
	case KindString, KindOther:
		if v, err := strconv.ParseFloat(c.Str, 64); err == nil {
			return v
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
