package tableone

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
)

// LevelCount is the frequency of one level within a row set.
type LevelCount struct {
	Level   dataset.Value
	Count   int
	Percent float64 // of non-missing values in the row set
}

// Stat is the raw statistic for one variable over one row set.
type Stat struct {
	N       int // non-missing values
	Missing int

	Mean, SD float64 // parametric

	Q1, Median, Q3 float64 // nonparametric

	Levels []LevelCount // categorical and binary
}

// Defined reports whether the row set held any non-missing value.
func (s Stat) Defined() bool { return s.N > 0 }

// Summary holds one variable's statistics for every data column.
type Summary struct {
	Variable VariableSpec
	// Levels is the shared level set (categorical) or the selected level
	// (binary). Empty for numeric kinds.
	Levels []dataset.Value
	// Stats aligns with the row sets passed to Summarize.
	Stats []Stat
	// Missing counts missing values across the whole column.
	Missing int
	// UnmatchedLevel is set when the requested binary level was not observed.
	UnmatchedLevel bool
}

// Summarize computes v's statistic over each row set. Categorical levels are
// taken from the union of the row sets so every row set reports the same
// levels and rows outside every row set contribute none.
func Summarize(v VariableSpec, col dataset.Column, rowsets [][]int, order LevelOrder) (Summary, error) {
	sum := Summary{Variable: v, Missing: col.MissingCount()}
	switch v.Kind {
	case Categorical:
		sum.Levels = Levels(retainedRows(col, rowsets), order)
	case Binary:
		l, ok := binaryLevel(retainedRows(col, rowsets), v.BinaryLevel)
		if !l.IsMissing() {
			sum.Levels = []dataset.Value{l}
		}
		sum.UnmatchedLevel = !ok
	}
	sum.Stats = make([]Stat, len(rowsets))
	for i, rows := range rowsets {
		s, err := summarizeRows(v, col, rows, sum.Levels)
		if err != nil {
			return Summary{}, err
		}
		sum.Stats[i] = s
	}
	return sum, nil
}

func summarizeRows(v VariableSpec, col dataset.Column, rows []int, levels []dataset.Value) (Stat, error) {
	var s Stat
	switch v.Kind {
	case Parametric, Nonparametric:
		xs := make([]float64, 0, len(rows))
		for _, r := range rows {
			val := col.Values[r]
			if val.IsMissing() {
				s.Missing++
				continue
			}
			x, ok := val.Float()
			if !ok {
				return Stat{}, configf("variables", "%q: %s value %q in row %d cannot be summarized as %s",
					v.Name, val.Kind(), val.String(), r+1, v.Kind)
			}
			xs = append(xs, x)
		}
		s.N = len(xs)
		if v.Kind == Parametric {
			s.Mean, s.SD = meanSD(xs)
		} else {
			s.Q1, s.Median, s.Q3 = quartiles(xs)
		}
	case Categorical, Binary:
		counts := make(map[dataset.Value]int, len(levels))
		for _, r := range rows {
			val := col.Values[r]
			if val.IsMissing() {
				s.Missing++
				continue
			}
			counts[val]++
			s.N++
		}
		s.Levels = make([]LevelCount, len(levels))
		for i, l := range levels {
			lc := LevelCount{Level: l, Count: counts[l]}
			if s.N > 0 {
				lc.Percent = 100 * float64(lc.Count) / float64(s.N)
			}
			s.Levels[i] = lc
		}
	}
	return s, nil
}

// Levels returns the distinct non-missing values of col.
func Levels(col dataset.Column, order LevelOrder) []dataset.Value {
	seen := map[dataset.Value]bool{}
	var out []dataset.Value
	for _, v := range col.Values {
		if v.IsMissing() || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if order == LevelsSorted {
		sort.Slice(out, func(i, j int) bool { return dataset.Compare(out[i], out[j]) < 0 })
	}
	return out
}

// retainedRows narrows col to the rows that appear in at least one row set,
// keeping column order.
func retainedRows(col dataset.Column, rowsets [][]int) dataset.Column {
	keep := make([]bool, len(col.Values))
	n := 0
	for _, rows := range rowsets {
		for _, r := range rows {
			if !keep[r] {
				keep[r] = true
				n++
			}
		}
	}
	if n == len(col.Values) {
		return col
	}
	vals := make([]dataset.Value, 0, n)
	for i, v := range col.Values {
		if keep[i] {
			vals = append(vals, v)
		}
	}
	return dataset.Column{Name: col.Name, Values: vals}
}

// binaryLevel resolves the displayed level: the override parsed by column
// type, else the maximum observed value under dataset.Compare. The bool is
// false when an override matched no observed value; that level is still
// displayed, with zero counts.
func binaryLevel(col dataset.Column, override string) (dataset.Value, bool) {
	if override != "" {
		want := typedLevel(col.Type(), override)
		for _, v := range col.Values {
			if v == want || (!v.IsMissing() && v.String() == override) {
				return v, true
			}
		}
		return want, false
	}
	best := dataset.NA()
	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		if best.IsMissing() || dataset.Compare(v, best) > 0 {
			best = v
		}
	}
	return best, true
}

// typedLevel reads s as a value of the column's type: a float for numeric
// columns, a case-insensitive bool for bool columns, else the text itself.
func typedLevel(t dataset.ColumnType, s string) dataset.Value {
	raw := strings.TrimSpace(s)
	switch t {
	case dataset.TypeNumeric:
		if x, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(x) {
			return dataset.Num(x)
		}
	case dataset.TypeBool:
		if b, err := strconv.ParseBool(strings.ToLower(raw)); err == nil {
			return dataset.BoolValue(b)
		}
	}
	return dataset.Str(s)
}

// warnings lists the cells of sum that render blank or partial.
func (sum Summary) warnings(cols []Column) []Warning {
	var out []Warning
	if sum.UnmatchedLevel {
		out = append(out, Warning{Kind: WarnUnmatchedBinaryLevel, Variable: sum.Variable.Name, Level: sum.Variable.BinaryLevel})
	}
	for i, s := range sum.Stats {
		switch {
		case !s.Defined():
			out = append(out, Warning{Kind: WarnEmptyStatistic, Variable: sum.Variable.Name, Column: cols[i].Name})
		case sum.Variable.Kind == Parametric && math.IsNaN(s.SD):
			out = append(out, Warning{Kind: WarnUndefinedSD, Variable: sum.Variable.Name, Column: cols[i].Name})
		}
	}
	return out
}

// summarizeAll runs Summarize for every spec. With workers > 1 variables are
// processed concurrently; results keep the order of specs.
func summarizeAll(ds *dataset.Dataset, specs []VariableSpec, rowsets [][]int, order LevelOrder, workers int) ([]Summary, error) {
	out := make([]Summary, len(specs))
	errs := make([]error, len(specs))
	run := func(i int) {
		col, _ := ds.Column(specs[i].Name)
		out[i], errs[i] = Summarize(specs[i], col, rowsets, order)
	}
	if workers <= 1 {
		for i := range specs {
			run(i)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
		return out, nil
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range specs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			run(i)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
