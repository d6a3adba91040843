package quality

import (
	"fmt"
	"math"
)

// Clean recursively rewrites a value tree so it survives strict JSON
// encoding: NaN and the infinities become sentinel strings, numeric
// slices are expanded element-wise, and any unrecognized type falls back
// to its display string. Clean is pure and idempotent.
func Clean(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Clean(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Clean(item)
		}
		return out
	case []float64:
		out := make([]interface{}, len(val))
		for i, f := range val {
			out[i] = Clean(f)
		}
		return out
	case []int:
		out := make([]interface{}, len(val))
		for i, n := range val {
			out[i] = n
		}
		return out
	case []string:
		out := make([]interface{}, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case float64:
		return cleanFloat(val)
	case float32:
		return cleanFloat(float64(val))
	case int:
		return val
	case int32:
		return int(val)
	case int64:
		return val
	case uint:
		return val
	case string, bool:
		return val
	default:
		// Last resort: lossy stringification keeps the tree encodable
		// no matter what a detector produced.
		return fmt.Sprintf("%v", val)
	}
}

func cleanFloat(f float64) interface{} {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}
