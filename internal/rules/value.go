package rules

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Tolerance is the slack allowed when comparing numeric property values.
// Stored measurements round-trip through twips and half-points, so exact
// float equality is meaningless.
const Tolerance = 0.1

// EqualValues compares an expected rule value against an actual document
// value using the loose semantics the rule corpus was written against:
//
//   - numbers match within Tolerance
//   - booleans normalize before comparison: 0 is false, any non-zero number
//     (the host object model uses -1 for true) is true
//   - everything else compares by string form
func EqualValues(expected, actual any) bool {
	if eb, ok := expected.(bool); ok {
		return eb == Truthy(actual)
	}
	if ab, ok := actual.(bool); ok {
		return ab == Truthy(expected)
	}
	en, eIsNum := AsNumber(expected)
	an, aIsNum := AsNumber(actual)
	if eIsNum && aIsNum {
		return math.Abs(en-an) <= Tolerance
	}
	return fmt.Sprint(expected) == fmt.Sprint(actual)
}

// AsNumber converts the JSON- and document-side numeric representations to
// float64. Returns false for non-numeric values.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// Truthy normalizes a document-side value to a boolean. Zero and false are
// false; non-zero numbers and true are true.
func Truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case nil:
		return false
	}
	if n, ok := AsNumber(v); ok {
		return n != 0
	}
	return false
}
