package render

import (
	"html"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/KaramelBytes/tableone-cli/internal/tableone"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// labelSanitizer strips markup from user supplied labels and column names.
func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

func cleanLabel(s string) string {
	// The template escapes again, so undo the sanitizer's entity encoding.
	return strings.TrimSpace(html.UnescapeString(labelSanitizer().Sanitize(s)))
}

var htmlTmpl = template.Must(template.New("table").Parse(`<table class="tableone">
<thead>
<tr><th>variable</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr class="{{.Class}}"><td>{{if .Indent}}&nbsp;&nbsp;&nbsp;&nbsp;{{end}}{{.Label}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
`))

type htmlRow struct {
	Class  string
	Indent bool
	Label  string
	Cells  []string
}

// WriteHTML emits a bare <table> fragment. Labels pass through a strict
// sanitizer before template escaping.
func WriteHTML(w io.Writer, t *tableone.Table) error {
	data := struct {
		Columns []string
		Rows    []htmlRow
	}{}
	for _, name := range t.ColumnNames() {
		data.Columns = append(data.Columns, cleanLabel(name))
	}
	for _, r := range t.Rows {
		data.Rows = append(data.Rows, htmlRow{
			Class:  r.Kind.String(),
			Indent: r.Kind == tableone.LevelRow,
			Label:  cleanLabel(r.Label),
			Cells:  r.Cells,
		})
	}
	return htmlTmpl.Execute(w, data)
}
