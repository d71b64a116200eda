package tableone

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Formatter renders raw statistics as display strings.
type Formatter struct {
	Precision int
	TrimZeros bool
}

// Number rounds x half away from zero at Precision digits, clamped to
// [0, MaxPrecision]. NaN renders empty.
func (f Formatter) Number(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	if math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	places := int32(min(max(f.Precision, 0), MaxPrecision))
	d := decimal.NewFromFloat(x).Round(places)
	if f.TrimZeros {
		return d.String()
	}
	return d.StringFixed(places)
}

// Count renders an exact integer count.
func (f Formatter) Count(n int) string { return strconv.Itoa(n) }

// MeanSD renders "mean (sd)", or just the mean when the sd is undefined.
func (f Formatter) MeanSD(s Stat) string {
	if !s.Defined() {
		return ""
	}
	if math.IsNaN(s.SD) {
		return f.Number(s.Mean)
	}
	return fmt.Sprintf("%s (%s)", f.Number(s.Mean), f.Number(s.SD))
}

// MedianIQR renders "median [q1–q3]".
func (f Formatter) MedianIQR(s Stat) string {
	if !s.Defined() {
		return ""
	}
	return fmt.Sprintf("%s [%s–%s]", f.Number(s.Median), f.Number(s.Q1), f.Number(s.Q3))
}

// CountPercent renders "count (pct%)" for level i of s.
func (f Formatter) CountPercent(s Stat, i int) string {
	if !s.Defined() || i < 0 || i >= len(s.Levels) {
		return ""
	}
	lc := s.Levels[i]
	return fmt.Sprintf("%d (%s%%)", lc.Count, f.Number(lc.Percent))
}

// Cell dispatches on kind. level selects the categorical level and is
// ignored for numeric kinds; binary always renders its single level.
func (f Formatter) Cell(kind Kind, s Stat, level int) string {
	switch kind {
	case Parametric:
		return f.MeanSD(s)
	case Nonparametric:
		return f.MedianIQR(s)
	case Categorical:
		return f.CountPercent(s, level)
	case Binary:
		return f.CountPercent(s, 0)
	default:
		panic(fmt.Sprintf("tableone: unhandled kind %v", kind))
	}
}
