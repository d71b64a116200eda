package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tableone-cli/internal/config"
	"github.com/KaramelBytes/tableone-cli/internal/dataset"
	"github.com/KaramelBytes/tableone-cli/internal/render"
	"github.com/KaramelBytes/tableone-cli/internal/tableone"
	"github.com/KaramelBytes/tableone-cli/internal/utils"
)

// loadFlags select how a data file is read.
type loadFlags struct {
	delimiter  string
	decimal    string
	thousands  string
	maxRows    int
	sheetName  string
	sheetIndex int
}

func (f *loadFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (default from extension)")
	c.Flags().StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	c.Flags().StringVar(&f.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	c.Flags().IntVar(&f.maxRows, "max-rows", 0, "maximum rows to read (0 = unlimited)")
	c.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	c.Flags().IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// options layers the flags over the global loading settings.
func (f *loadFlags) options(g *cfgpkg.Global) (dataset.LoadOptions, error) {
	opt := dataset.DefaultLoadOptions()
	if g != nil {
		o, err := g.LoadOptions()
		if err != nil {
			return opt, err
		}
		opt = o
	}
	if f.delimiter != "" {
		switch f.delimiter {
		case ",":
			opt.Delimiter = ','
		case "\t", "tab":
			opt.Delimiter = '\t'
		case ";":
			opt.Delimiter = ';'
		case "|":
			opt.Delimiter = '|'
		default:
			return opt, fmt.Errorf("unsupported --delimiter: %s", f.delimiter)
		}
	}
	switch strings.ToLower(strings.TrimSpace(f.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", f.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(f.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", f.thousands)
	}
	if f.maxRows > 0 {
		opt.MaxRows = f.maxRows
	}
	return opt, nil
}

func (f *loadFlags) load(path string, g *cfgpkg.Global, sheetOverride string) (*dataset.Dataset, error) {
	opt, err := f.options(g)
	if err != nil {
		return nil, err
	}
	sheet := f.sheetName
	if sheet == "" {
		sheet = sheetOverride
	}
	ds, err := dataset.Load(path, opt, sheet, f.sheetIndex)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// tableFlags override the table definition.
type tableFlags struct {
	tableFile   string
	strata      string
	vars        []string
	binVars     []string
	catVars     []string
	npVars      []string
	labels      []string
	binLevels   []string
	precision   int
	total       bool
	noMissing   bool
	trimZeros   bool
	sortStrata  bool
	strataOrder []string
	levelOrder  string
	workers     int
	format      string
}

func (f *tableFlags) register(c *cobra.Command) {
	fl := c.Flags()
	fl.StringVarP(&f.tableFile, "table", "t", "", "table definition file (default: nearest "+utils.TableFileName+" above the data file)")
	fl.StringVarP(&f.strata, "strata", "s", "", "grouping column")
	fl.StringSliceVar(&f.vars, "vars", nil, "variables to summarize, in order (default: every column except --strata)")
	fl.StringSliceVar(&f.binVars, "binvars", nil, "variables summarized as a single level count (%)")
	fl.StringSliceVar(&f.catVars, "catvars", nil, "variables summarized per level as count (%)")
	fl.StringSliceVar(&f.npVars, "npvars", nil, "numeric variables summarized as median [IQR]")
	fl.StringArrayVar(&f.labels, "label", nil, "display name as column=label (repeatable)")
	fl.StringArrayVar(&f.binLevels, "binary-level", nil, "displayed level of a binary variable as column=level (repeatable)")
	fl.IntVar(&f.precision, "precision", 2, "decimal digits in statistics")
	fl.BoolVar(&f.total, "total", false, "add a column computed over all rows")
	fl.BoolVar(&f.noMissing, "no-missing", false, "omit the missing stratum and nmissing columns")
	fl.BoolVar(&f.trimZeros, "trim-zeros", false, "drop trailing fractional zeros (46.20 -> 46.2)")
	fl.BoolVar(&f.sortStrata, "sort-strata", false, "order strata by value instead of first appearance")
	fl.StringSliceVar(&f.strataOrder, "strata-order", nil, "strata labels to place first, in order")
	fl.StringVar(&f.levelOrder, "level-order", "", "categorical level order: sorted|appearance")
	fl.IntVar(&f.workers, "workers", 0, "summarize variables concurrently with this many workers")
	fl.StringVarP(&f.format, "format", "f", "", "output format: text|markdown|csv|json|html")
}

// definition resolves the table file: --table, else the nearest
// tableone.yaml above dataPath, else an empty definition.
func (f *tableFlags) definition(dataPath string) (*cfgpkg.TableFile, error) {
	if f.tableFile != "" {
		return cfgpkg.LoadTableFile(f.tableFile)
	}
	if dataPath == "" {
		return cfgpkg.NewTableFile(""), nil
	}
	found, err := utils.FindTableFile(dataPath)
	if errors.Is(err, utils.ErrTableFileNotFound) {
		return cfgpkg.NewTableFile(""), nil
	}
	if err != nil {
		return nil, err
	}
	return cfgpkg.LoadTableFile(found)
}

// config merges defaults, the table file and any flags the user changed.
func (f *tableFlags) config(c *cobra.Command, tf *cfgpkg.TableFile, g *cfgpkg.Global) (tableone.Config, error) {
	fl := c.Flags()
	if fl.Changed("strata") {
		tf.Strata = f.strata
	}
	tc, err := tf.ToConfig(g)
	if err != nil {
		return tc, err
	}
	if fl.Changed("vars") {
		tc.Variables = f.vars
	}
	if fl.Changed("binvars") {
		tc.BinaryVariables = f.binVars
	}
	if fl.Changed("catvars") {
		tc.CategoricalVariables = f.catVars
	}
	if fl.Changed("npvars") {
		tc.NonparametricVariables = f.npVars
	}
	if len(f.labels) > 0 {
		m, err := parsePairs("label", f.labels)
		if err != nil {
			return tc, err
		}
		tc.DisplayNames = mergePairs(tc.DisplayNames, m)
	}
	if len(f.binLevels) > 0 {
		m, err := parsePairs("binary-level", f.binLevels)
		if err != nil {
			return tc, err
		}
		tc.BinaryLevels = mergePairs(tc.BinaryLevels, m)
	}
	if fl.Changed("precision") {
		tc.Precision = f.precision
	}
	if fl.Changed("total") {
		tc.AddTotalColumn = f.total
	}
	if fl.Changed("no-missing") {
		tc.AddMissingCounts = !f.noMissing
	}
	if fl.Changed("trim-zeros") {
		tc.TrimZeros = f.trimZeros
	}
	if fl.Changed("sort-strata") {
		tc.SortStrata = f.sortStrata
	}
	if fl.Changed("strata-order") {
		tc.StrataOrder = f.strataOrder
	}
	if fl.Changed("level-order") {
		order, err := tableone.ParseLevelOrder(f.levelOrder)
		if err != nil {
			return tc, err
		}
		tc.LevelOrder = order
	}
	if fl.Changed("workers") {
		tc.Workers = f.workers
	}
	tc.Logger = appLogger()
	return tc, nil
}

// outputFormat picks --format, then the output file extension, then the
// configured default.
func (f *tableFlags) outputFormat(c *cobra.Command, outPath string, g *cfgpkg.Global) (render.Format, error) {
	if c.Flags().Changed("format") {
		return render.ParseFormat(f.format)
	}
	if ext := filepath.Ext(outPath); ext != "" {
		if ff, err := render.ParseFormat(ext); err == nil {
			return ff, nil
		}
	}
	if g != nil && g.Format != "" {
		return render.ParseFormat(g.Format)
	}
	return render.Text, nil
}

func parsePairs(flag string, vals []string) (map[string]string, error) {
	out := make(map[string]string, len(vals))
	for _, v := range vals {
		k, val, ok := strings.Cut(v, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --%s %q (use column=value)", flag, v)
		}
		out[k] = val
	}
	return out, nil
}

func mergePairs(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// reportTable prints non-fatal notes about t to stderr.
func reportTable(t *tableone.Table, quiet bool) {
	if quiet {
		return
	}
	if len(t.Excluded) > 0 {
		fmt.Fprintf(os.Stderr, "⚠ Not displayed (not in --vars): %s\n", strings.Join(t.Excluded, ", "))
	}
	for _, w := range t.Warnings {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", w)
	}
}
