package tableone

import (
	"testing"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
)

// col builds a column from Go literals: float64/int -> number, string -> string,
// bool -> bool, nil -> missing.
func col(name string, vals ...any) dataset.Column {
	out := make([]dataset.Value, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case nil:
			out[i] = dataset.NA()
		case int:
			out[i] = dataset.Num(float64(x))
		case float64:
			out[i] = dataset.Num(x)
		case string:
			out[i] = dataset.Str(x)
		case bool:
			out[i] = dataset.BoolValue(x)
		default:
			panic("unsupported literal")
		}
	}
	return dataset.NewColumn(name, out...)
}

func mustDataset(t *testing.T, cols ...dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(cols...)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}

func mustGenerate(t *testing.T, ds *dataset.Dataset, cfg Config) *Table {
	t.Helper()
	tbl, err := Generate(ds, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return tbl
}

func rowByLabel(t *testing.T, tbl *Table, label string) Row {
	t.Helper()
	for _, r := range tbl.Rows {
		if r.Label == label {
			return r
		}
	}
	t.Fatalf("no row labelled %q in %v", label, tbl.Strings())
	return Row{}
}
