package quality

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestCleanNonFiniteFloats(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want interface{}
	}{
		{"nan", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"finite", 1.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanNestedTree(t *testing.T) {
	in := map[string]interface{}{
		"values": []interface{}{1, math.NaN(), "ok", nil},
		"stats": map[string]interface{}{
			"max": math.Inf(1),
			"min": math.Inf(-1),
		},
	}

	got := Clean(in)
	want := map[string]interface{}{
		"values": []interface{}{1, "NaN", "ok", nil},
		"stats": map[string]interface{}{
			"max": "Infinity",
			"min": "-Infinity",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clean() = %#v, want %#v", got, want)
	}

	// The cleaned tree must survive strict JSON encoding.
	if _, err := json.Marshal(got); err != nil {
		t.Fatalf("cleaned tree is not JSON-encodable: %v", err)
	}
}

func TestCleanExpandsNumericSlices(t *testing.T) {
	got := Clean([]float64{1, math.NaN(), 3})
	want := []interface{}{1.0, "NaN", 3.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clean([]float64) = %#v, want %#v", got, want)
	}
}

func TestCleanStringifiesUnknownTypes(t *testing.T) {
	type opaque struct{ A int }
	got := Clean(opaque{A: 7})
	if _, ok := got.(string); !ok {
		t.Errorf("Clean(struct) = %#v, want a string", got)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []interface{}{
		math.NaN(),
		math.Inf(1),
		map[string]interface{}{"a": []interface{}{math.Inf(-1), 2, true}},
		[]float64{math.NaN(), 1},
		"already a string",
		nil,
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Clean not idempotent for %#v: %#v != %#v", in, once, twice)
		}
	}
}
