package engine

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// valueKind ranks cell values so mixed columns still sort consistently.
type valueKind int

const (
	kindMissing valueKind = iota
	kindNumeric
	kindText
)

// CompareValues orders two cell values the way the table sorts them.
// nil sorts first, then numeric values (numbers, or strings that parse as numbers)
// in numeric order, then everything else by its display string. It returns -1, 0 or 1.
func CompareValues(a, b any) int {
	ka, fa := classify(a)
	kb, fb := classify(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}

	switch ka {
	case kindMissing:
		return 0
	case kindNumeric:
		return cmp.Compare(fa, fb)
	default:
		return strings.Compare(FormatValue(a), FormatValue(b))
	}
}

func classify(v any) (valueKind, float64) {
	if v == nil {
		return kindMissing, 0
	}
	if f, ok := numericValue(v); ok {
		return kindNumeric, f
	}
	return kindText, 0
}

// numericValue reports the float64 value of v when v is a number or a numeric string.
//
//nolint:cyclop // One branch per JSON-decodable numeric representation.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatValue renders a cell value for display. nil renders as an empty string and
// whole floats drop their fractional part so "42" is not shown as "42.000000".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
