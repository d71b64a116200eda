package tableone

// ColumnKind identifies what a table column reports.
type ColumnKind int

const (
	StratumColumn ColumnKind = iota
	MissingStratumColumn
	TotalColumn
	MissingCountColumn
)

func (k ColumnKind) String() string {
	switch k {
	case StratumColumn:
		return "stratum"
	case MissingStratumColumn:
		return "missing_stratum"
	case TotalColumn:
		return "total"
	case MissingCountColumn:
		return "nmissing"
	default:
		return "unknown"
	}
}

// Column is one output column of the table.
type Column struct {
	Name string
	Kind ColumnKind
}

// RowKind identifies what a table row reports.
type RowKind int

const (
	// CountRow is the leading "n" row.
	CountRow RowKind = iota
	// ValueRow is a single-row variable (parametric, nonparametric, binary).
	ValueRow
	// HeaderRow introduces a categorical variable.
	HeaderRow
	// LevelRow is one level of a categorical variable.
	LevelRow
)

func (k RowKind) String() string {
	switch k {
	case CountRow:
		return "count"
	case ValueRow:
		return "value"
	case HeaderRow:
		return "header"
	case LevelRow:
		return "level"
	default:
		return "unknown"
	}
}

// Row is one output row. Cells aligns with Table.Columns.
type Row struct {
	Variable string
	Label    string
	Kind     RowKind
	Cells    []string
}

// Table is the assembled summary.
type Table struct {
	Strata   string
	Columns  []Column
	Rows     []Row
	Warnings []Warning
	// Excluded lists override entries that were not displayed because they
	// are not among the requested variables.
	Excluded []string
}

// ColumnNames returns the column headers in order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Layout fixes the table columns for one partition.
type Layout struct {
	// Columns lists every output column. The first len(Rowsets) are data
	// columns; a trailing MissingCountColumn may follow.
	Columns []Column
	Rowsets [][]int
	// MissingStrata counts rows whose strata value is missing.
	MissingStrata int
}

// NewLayout derives the columns: one per stratum, then the missing stratum
// (when missing counts are on and any row lacks a strata value), the total,
// and the missing-count column.
func NewLayout(p Partition, addMissing, addTotal bool) Layout {
	l := Layout{MissingStrata: len(p.Missing)}
	for _, s := range p.Strata {
		l.Columns = append(l.Columns, Column{Name: s.Label, Kind: StratumColumn})
		l.Rowsets = append(l.Rowsets, s.Rows)
	}
	if addMissing && len(p.Missing) > 0 {
		l.Columns = append(l.Columns, Column{Name: MissingStratumLabel, Kind: MissingStratumColumn})
		l.Rowsets = append(l.Rowsets, p.Missing)
	}
	if addTotal {
		all := make([]int, p.Total)
		for i := range all {
			all[i] = i
		}
		l.Columns = append(l.Columns, Column{Name: "total", Kind: TotalColumn})
		l.Rowsets = append(l.Rowsets, all)
	}
	if addMissing {
		l.Columns = append(l.Columns, Column{Name: "nmissing", Kind: MissingCountColumn})
	}
	return l
}

func (l Layout) hasMissingColumn() bool {
	return len(l.Columns) > len(l.Rowsets)
}

// Assemble lays out the "n" row followed by each summary in order.
func Assemble(sums []Summary, l Layout, f Formatter) Table {
	t := Table{Columns: l.Columns}
	width := len(l.Columns)
	missingIdx := -1
	if l.hasMissingColumn() {
		missingIdx = width - 1
	}

	n := Row{Label: "n", Kind: CountRow, Cells: make([]string, width)}
	for i, rows := range l.Rowsets {
		n.Cells[i] = f.Count(len(rows))
	}
	if missingIdx >= 0 {
		n.Cells[missingIdx] = f.Count(l.MissingStrata)
	}
	t.Rows = append(t.Rows, n)

	for _, sum := range sums {
		v := sum.Variable
		if v.Kind == Categorical {
			head := Row{Variable: v.Name, Label: v.Label, Kind: HeaderRow, Cells: make([]string, width)}
			if missingIdx >= 0 {
				head.Cells[missingIdx] = f.Count(sum.Missing)
			}
			t.Rows = append(t.Rows, head)
			for li, level := range sum.Levels {
				r := Row{Variable: v.Name, Label: level.String(), Kind: LevelRow, Cells: make([]string, width)}
				for i, s := range sum.Stats {
					r.Cells[i] = f.Cell(v.Kind, s, li)
				}
				t.Rows = append(t.Rows, r)
			}
			continue
		}
		r := Row{Variable: v.Name, Label: rowLabel(sum), Kind: ValueRow, Cells: make([]string, width)}
		for i, s := range sum.Stats {
			r.Cells[i] = f.Cell(v.Kind, s, 0)
		}
		if missingIdx >= 0 {
			r.Cells[missingIdx] = f.Count(sum.Missing)
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

func rowLabel(sum Summary) string {
	v := sum.Variable
	switch v.Kind {
	case Parametric:
		return v.Label + ": mean (sd)"
	case Nonparametric:
		return v.Label + ": median [IQR]"
	case Binary:
		if len(sum.Levels) == 0 {
			return v.Label
		}
		return v.Label + ": " + sum.Levels[0].String()
	default:
		return v.Label
	}
}

// Strings flattens the table into a header line plus one line per row,
// with the row label first.
func (t *Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string{"variable"}, t.ColumnNames()...))
	for _, r := range t.Rows {
		label := r.Label
		if r.Kind == LevelRow {
			label = "    " + label
		}
		out = append(out, append([]string{label}, r.Cells...))
	}
	return out
}
