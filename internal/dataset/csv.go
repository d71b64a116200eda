package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// LoadOptions controls how raw text cells become typed values.
type LoadOptions struct {
	// Delimiter for CSV. If 0, picks '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
	// MissingStrings are cell contents treated as missing (after trimming).
	MissingStrings []string
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
}

// DefaultLoadOptions returns reasonable defaults for loading tables.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		MissingStrings: []string{"", "NA", "NaN"},
	}
}

// ReadCSV loads a delimited text file into a Dataset.
func ReadCSV(path string, opt LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return DecodeCSV(f, delim, opt)
}

// DecodeCSV reads a header row followed by data rows from r.
func DecodeCSV(r io.Reader, delim rune, opt LoadOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New()
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if opt.MaxRows > 0 && len(rows) >= opt.MaxRows {
			break
		}
		rows = append(rows, rec)
	}
	return fromRecords(header, rows, opt)
}

// fromRecords turns a header plus raw rows into typed columns. Short rows are
// padded with missing cells; cells beyond the header are dropped.
func fromRecords(header []string, rows [][]string, opt LoadOptions) (*Dataset, error) {
	cols := make([]Column, 0, len(header))
	raw := make([]string, len(rows))
	for j, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		for i, rec := range rows {
			if j < len(rec) {
				raw[i] = rec[j]
			} else {
				raw[i] = ""
			}
		}
		cols = append(cols, typedColumn(name, raw, opt))
	}
	return New(cols...)
}

// typedColumn unifies the column type: numeric when every non-missing cell
// parses as a number, bool when every cell is true/false, else string.
func typedColumn(name string, raw []string, opt LoadOptions) Column {
	n := len(raw)
	missing := make([]bool, n)
	nums := make([]float64, n)
	allNum, allBool := true, true
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if isMissingString(s, opt.MissingStrings) {
			missing[i] = true
			continue
		}
		if allNum {
			if x, ok := parseNumeric(s, opt); ok {
				nums[i] = x
			} else {
				allNum = false
			}
		}
		if allBool {
			if _, ok := parseBool(s); !ok {
				allBool = false
			}
		}
	}
	vals := make([]Value, n)
	for i, s := range raw {
		if missing[i] {
			continue
		}
		s = strings.TrimSpace(s)
		switch {
		case allNum:
			vals[i] = Num(nums[i])
		case allBool:
			b, _ := parseBool(s)
			vals[i] = BoolValue(b)
		default:
			vals[i] = Str(s)
		}
	}
	return Column{Name: name, Values: vals}
}

func isMissingString(s string, markers []string) bool {
	for _, m := range markers {
		if s == m {
			return true
		}
	}
	return false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func sniffDelimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// commaGrouped matches integers grouped in threes by commas, such as 1,000
// or 12,345,678. In auto-detect mode these read as thousands, not decimals.
var commaGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+$`)

func parseNumeric(s string, opt LoadOptions) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 && !commaGrouped.MatchString(raw) {
			dec = ','
		} else {
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Load picks a reader by file extension. sheetName/sheetIndex apply to .xlsx.
func Load(path string, opt LoadOptions, sheetName string, sheetIndex int) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, opt, sheetName, sheetIndex)
	}
	return ReadCSV(path, opt)
}
