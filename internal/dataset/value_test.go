package dataset

import (
	"math"
	"sort"
	"testing"
)

func TestNumFoldsNaNAndNegativeZero(t *testing.T) {
	if !Num(math.NaN()).IsMissing() {
		t.Fatalf("NaN should be missing")
	}
	if Num(math.Copysign(0, -1)) != Num(0) {
		t.Fatalf("-0 and 0 should be the same value")
	}
}

func TestCompareTotalOrder(t *testing.T) {
	vals := []Value{Str("b"), Num(2), BoolValue(true), NA(), Str("a"), Num(-1), BoolValue(false)}
	sort.Slice(vals, func(i, j int) bool { return Compare(vals[i], vals[j]) < 0 })
	want := []Value{NA(), BoolValue(false), BoolValue(true), Num(-1), Num(2), Str("a"), Str("b")}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("sorted[%d] = %v, want %v (all: %v)", i, vals[i], want[i], vals)
		}
	}
	if Compare(Num(3), Num(3)) != 0 || Compare(Str("x"), Str("x")) != 0 {
		t.Fatalf("equal values should compare 0")
	}
}

func TestValueString(t *testing.T) {
	cases := map[string]Value{
		"1":       Num(1),
		"0.5":     Num(0.5),
		"f":       Str("f"),
		"true":    BoolValue(true),
		"missing": NA(),
	}
	for want, v := range cases {
		if got := v.String(); got != want {
			t.Errorf("String(%#v) = %q, want %q", v, got, want)
		}
	}
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New(NewColumn("a", Num(1), Num(2)), NewColumn("b", Num(1)))
	if err == nil {
		t.Fatalf("expected shape error")
	}
	if _, err := New(NewColumn("a", Num(1)), NewColumn("a", Num(2))); err == nil {
		t.Fatalf("expected duplicate column error")
	}
}

func TestColumnType(t *testing.T) {
	cases := []struct {
		col  Column
		want ColumnType
	}{
		{NewColumn("e", NA(), NA()), TypeEmpty},
		{NewColumn("n", Num(1), NA()), TypeNumeric},
		{NewColumn("b", BoolValue(true)), TypeBool},
		{NewColumn("s", Str("x")), TypeString},
		{NewColumn("m", Str("x"), Num(1)), TypeMixed},
	}
	for _, tc := range cases {
		if got := tc.col.Type(); got != tc.want {
			t.Errorf("%s: type = %s, want %s", tc.col.Name, got, tc.want)
		}
	}
	if !NewColumn("e", NA()).AllNumeric() {
		t.Errorf("all-missing column should be vacuously numeric")
	}
}
