// Package render writes an assembled tableone.Table in presentation formats.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KaramelBytes/tableone-cli/internal/tableone"
)

// Format names an output encoding.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
	HTML     Format = "html"
)

// Formats lists the supported formats in help order.
var Formats = []Format{Text, Markdown, CSV, JSON, HTML}

// ParseFormat maps a flag value (or file extension) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "text", "txt":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "html", "htm":
		return HTML, nil
	default:
		return "", fmt.Errorf("unknown format %q (use text|markdown|csv|json|html)", s)
	}
}

// Extension returns the file extension used for batch outputs.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case CSV:
		return ".csv"
	case JSON:
		return ".json"
	case HTML:
		return ".html"
	default:
		return ".txt"
	}
}

// Render writes t to w in format f.
func Render(w io.Writer, f Format, t *tableone.Table) error {
	if t == nil {
		return fmt.Errorf("render: nil table")
	}
	switch f {
	case Text:
		return WriteText(w, t)
	case Markdown:
		return WriteMarkdown(w, t)
	case CSV:
		return WriteCSV(w, t)
	case JSON:
		return WriteJSON(w, t)
	case HTML:
		return WriteHTML(w, t)
	default:
		return fmt.Errorf("render: unsupported format %q", f)
	}
}

// WriteText aligns the table in space-padded columns.
func WriteText(w io.Writer, t *tableone.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, line := range t.Strings() {
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteMarkdown emits a pipe table. Level rows keep their indentation as
// non-breaking spaces so markdown viewers do not collapse it.
func WriteMarkdown(w io.Writer, t *tableone.Table) error {
	var b strings.Builder
	lines := t.Strings()
	for i, line := range lines {
		b.WriteString("|")
		for j, cell := range line {
			if j == 0 && strings.HasPrefix(cell, " ") {
				trimmed := strings.TrimLeft(cell, " ")
				cell = strings.Repeat("&nbsp;", len(cell)-len(trimmed)) + trimmed
			}
			b.WriteString(" ")
			b.WriteString(safeVal(cell))
			b.WriteString(" |")
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString("|")
			for j := range line {
				if j == 0 {
					b.WriteString(" --- |")
				} else {
					b.WriteString(" ---: |")
				}
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "\\|")
}

// WriteCSV emits the flattened table, header first.
func WriteCSV(w io.Writer, t *tableone.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Strings()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
