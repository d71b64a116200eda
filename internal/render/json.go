package render

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/KaramelBytes/tableone-cli/internal/tableone"
)

type jsonColumn struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type jsonRow struct {
	Variable string   `json:"variable,omitempty"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Cells    []string `json:"cells"`
}

type jsonTable struct {
	Strata   string             `json:"strata"`
	Columns  []jsonColumn       `json:"columns"`
	Rows     []jsonRow          `json:"rows"`
	Warnings []tableone.Warning `json:"warnings,omitempty"`
	Excluded []string           `json:"excluded,omitempty"`
}

// WriteJSON emits the table with column and row kinds spelled out.
func WriteJSON(w io.Writer, t *tableone.Table) error {
	out := jsonTable{Strata: t.Strata, Warnings: t.Warnings, Excluded: t.Excluded}
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, jsonColumn{Name: c.Name, Kind: c.Kind.String()})
	}
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, jsonRow{Variable: r.Variable, Label: r.Label, Kind: r.Kind.String(), Cells: r.Cells})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
