package dataset

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the payload carried by a Value.
type ValueKind int

const (
	Missing ValueKind = iota
	Bool
	Number
	String
)

func (k ValueKind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single dataset cell. The zero Value is missing.
// Values are comparable and may be used as map keys.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	b    bool
}

// NA returns a missing value.
func NA() Value { return Value{} }

// Num wraps a float. NaN is treated as missing.
func Num(x float64) Value {
	if math.IsNaN(x) {
		return Value{}
	}
	if x == 0 {
		x = 0 // fold -0 so it shares a level with +0
	}
	return Value{kind: Number, num: x}
}

// Str wraps a string.
func Str(s string) Value { return Value{kind: String, str: s} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsMissing() bool { return v.kind == Missing }

// Float returns the numeric payload; ok is false for non-number values.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// String renders the value the way it is shown as a level label.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case String:
		return v.str
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return "missing"
	}
}

// Compare imposes a total order on values: missing < bool < number < string.
// Bools order false before true, numbers numerically, strings byte-wise.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case Bool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case Number:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	case String:
		return strings.Compare(a.str, b.str)
	default:
		return 0
	}
}
