package render

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
	"github.com/KaramelBytes/tableone-cli/internal/tableone"
)

func sampleTable(t *testing.T) *tableone.Table {
	t.Helper()
	ds, err := dataset.New(
		dataset.NewColumn("group", dataset.Str("A"), dataset.Str("A"), dataset.Str("B"), dataset.Str("B")),
		dataset.NewColumn("age", dataset.Num(30), dataset.Num(40), dataset.NA(), dataset.Num(50)),
		dataset.NewColumn("stage", dataset.Str("I"), dataset.Str("II"), dataset.Str("I"), dataset.Str("I")),
	)
	if err != nil {
		t.Fatal(err)
	}
	cfg := tableone.DefaultConfig("group")
	cfg.DisplayNames = map[string]string{"age": "<b>Age</b> & years"}
	tbl, err := tableone.Generate(ds, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Text, "MD": Markdown, ".csv": CSV, "json": JSON, "htm": HTML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for pdf")
	}
	if HTML.Extension() != ".html" || Text.Extension() != ".txt" {
		t.Error("unexpected extensions")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, CSV, sampleTable(t)); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"variable,A,B,nmissing",
		"n,2,2,0",
		"<b>Age</b> & years: mean (sd),35.00 (7.07),50.00,1",
		"stage,,,0",
		`"    I",1 (50.00%),2 (100.00%),`,
		`"    II",1 (50.00%),0 (0.00%),`,
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv (-want +got):\n%s", diff)
	}
}

func TestWriteTextAligns(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Text, sampleTable(t)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	col := strings.Index(lines[0], "A")
	if got := strings.Index(lines[1], "2"); got != col {
		t.Errorf("n row misaligned: header A at %d, value at %d\n%s", col, got, buf.String())
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Markdown, sampleTable(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"| variable | A | B | nmissing |\n| --- | ---: | ---: | ---: |\n",
		"| &nbsp;&nbsp;&nbsp;&nbsp;II | 1 (50.00%) | 0 (0.00%) |  |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, JSON, sampleTable(t)); err != nil {
		t.Fatal(err)
	}
	var got jsonTable
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.Strata != "group" {
		t.Errorf("strata=%q", got.Strata)
	}
	wantCols := []jsonColumn{{"A", "stratum"}, {"B", "stratum"}, {"nmissing", "nmissing"}}
	if diff := cmp.Diff(wantCols, got.Columns); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if got.Rows[2].Kind != "header" || got.Rows[3].Kind != "level" {
		t.Errorf("row kinds: %+v", got.Rows)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Kind != tableone.WarnUndefinedSD {
		t.Errorf("warnings: %+v", got.Warnings)
	}
}

func TestWriteHTMLSanitizesLabels(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, HTML, sampleTable(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>") {
		t.Errorf("label markup leaked:\n%s", out)
	}
	for _, want := range []string{
		"<td>Age &amp; years: mean (sd)</td>",
		`<tr class="level"><td>&nbsp;&nbsp;&nbsp;&nbsp;I</td>`,
		"<th>nmissing</th>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNilTable(t *testing.T) {
	if err := Render(&bytes.Buffer{}, Text, nil); err == nil {
		t.Error("expected error for nil table")
	}
}
