package dataset

import (
	"errors"
	"fmt"
)

// ErrShape is returned when columns disagree on length or names collide.
var ErrShape = errors.New("invalid dataset shape")

// ColumnType summarizes the kinds present in a column.
type ColumnType string

const (
	TypeEmpty   ColumnType = "empty"
	TypeNumeric ColumnType = "numeric"
	TypeBool    ColumnType = "bool"
	TypeString  ColumnType = "string"
	TypeMixed   ColumnType = "mixed"
)

// Column is a named sequence of values sharing the dataset row index.
type Column struct {
	Name   string
	Values []Value
}

// NewColumn is a convenience constructor.
func NewColumn(name string, vals ...Value) Column {
	return Column{Name: name, Values: vals}
}

func (c Column) Len() int { return len(c.Values) }

// MissingCount counts missing entries across the whole column.
func (c Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

// AllNumeric reports whether every non-missing value is a number.
// An all-missing column is vacuously numeric.
func (c Column) AllNumeric() bool {
	for _, v := range c.Values {
		if !v.IsMissing() && v.Kind() != Number {
			return false
		}
	}
	return true
}

// Type inspects the non-missing values and reports the column type.
func (c Column) Type() ColumnType {
	seen := map[ValueKind]bool{}
	for _, v := range c.Values {
		if !v.IsMissing() {
			seen[v.Kind()] = true
		}
	}
	switch {
	case len(seen) == 0:
		return TypeEmpty
	case len(seen) > 1:
		return TypeMixed
	case seen[Number]:
		return TypeNumeric
	case seen[Bool]:
		return TypeBool
	default:
		return TypeString
	}
}

// Dataset is an ordered, read-only collection of equal-length columns.
type Dataset struct {
	names []string
	cols  map[string]Column
	rows  int
}

// New builds a dataset, rejecting duplicate names and ragged columns.
func New(cols ...Column) (*Dataset, error) {
	d := &Dataset{cols: make(map[string]Column, len(cols))}
	for i, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrShape, i+1)
		}
		if _, dup := d.cols[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrShape, c.Name)
		}
		if i == 0 {
			d.rows = c.Len()
		} else if c.Len() != d.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrShape, c.Name, c.Len(), d.rows)
		}
		d.names = append(d.names, c.Name)
		d.cols[c.Name] = c
	}
	return d, nil
}

// Rows returns the shared row count.
func (d *Dataset) Rows() int { return d.rows }

// Names returns column names in declaration order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Column looks up a column by exact name.
func (d *Dataset) Column(name string) (Column, bool) {
	c, ok := d.cols[name]
	return c, ok
}

// Has reports whether the dataset carries the named column.
func (d *Dataset) Has(name string) bool {
	_, ok := d.cols[name]
	return ok
}
