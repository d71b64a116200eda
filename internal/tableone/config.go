package tableone

import (
	"go.uber.org/zap"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
)

// Config is the validated option bundle for one Generate call.
type Config struct {
	// StrataColumn names the grouping column. Required.
	StrataColumn string
	// Variables lists the columns to summarize, in output order. Empty means
	// every dataset column except the strata column.
	Variables []string

	// Kind overrides. Names listed here but absent from Variables are not
	// displayed; a name in more than one list is a configuration error.
	BinaryVariables        []string
	CategoricalVariables   []string
	NonparametricVariables []string

	// AddMissingCounts appends a missing-count column and keeps a column for
	// rows whose strata value is missing.
	AddMissingCounts bool
	// AddTotalColumn appends a column computed over the whole dataset.
	AddTotalColumn bool

	// BinaryLevels picks the displayed level per binary variable, parsed by
	// column type (float for numeric, case-insensitive bool for bool).
	// Unlisted variables show the maximum level.
	BinaryLevels map[string]string
	// DisplayNames maps column names to printed labels.
	DisplayNames map[string]string

	// Precision is the number of decimal digits in rendered statistics.
	Precision int
	// TrimZeros drops trailing fractional zeros ("46.20" -> "46.2").
	TrimZeros bool

	// StrataOrder lists strata labels to place first, in this order.
	StrataOrder []string
	// SortStrata orders strata by value instead of first appearance.
	SortStrata bool
	// LevelOrder sequences categorical levels.
	LevelOrder LevelOrder

	// Workers > 1 summarizes variables concurrently.
	Workers int
	// Logger receives debug and warning events; nil disables logging.
	Logger *zap.Logger
}

// MaxPrecision is the largest accepted Precision. float64 carries about 15
// significant decimal digits, so more places only print noise.
const MaxPrecision = 15

// DefaultConfig returns the documented defaults for the given strata column.
func DefaultConfig(strata string) Config {
	return Config{
		StrataColumn:     strata,
		AddMissingCounts: true,
		Precision:        2,
	}
}

// VariableSpec is one resolved output variable.
type VariableSpec struct {
	Name  string
	Label string
	Kind  Kind
	// BinaryLevel is the requested display level for binary variables; empty
	// selects the maximum observed level.
	BinaryLevel string
}

// Plan is the outcome of validating a Config against a dataset.
type Plan struct {
	Variables []VariableSpec
	// Excluded lists override-list entries that are not in Variables and
	// therefore not displayed.
	Excluded []string
}

type overrideList struct {
	field string
	kind  Kind
	names []string
}

func (c Config) overrideLists() []overrideList {
	return []overrideList{
		{field: "binary_variables", kind: Binary, names: c.BinaryVariables},
		{field: "categorical_variables", kind: Categorical, names: c.CategoricalVariables},
		{field: "nonparametric_variables", kind: Nonparametric, names: c.NonparametricVariables},
	}
}

// Resolve validates the configuration against ds and classifies every
// variable. It runs once, before any statistics are computed.
func (c Config) Resolve(ds *dataset.Dataset) (Plan, error) {
	if ds == nil {
		return Plan{}, configf("", "dataset is required")
	}
	if c.StrataColumn == "" {
		return Plan{}, configf("strata_column", "required")
	}
	if !ds.Has(c.StrataColumn) {
		return Plan{}, configf("strata_column", "column %q not found", c.StrataColumn)
	}
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return Plan{}, configf("precision", "must be between 0 and %d, got %d", MaxPrecision, c.Precision)
	}
	if c.Workers < 0 {
		return Plan{}, configf("workers", "must be >= 0, got %d", c.Workers)
	}

	declared := map[string]Kind{}
	declaredIn := map[string]string{}
	for _, l := range c.overrideLists() {
		for _, name := range l.names {
			if prev, ok := declared[name]; ok {
				if prev != l.kind {
					return Plan{}, configf(l.field, "%q is also listed in %s", name, declaredIn[name])
				}
				continue
			}
			declared[name] = l.kind
			declaredIn[name] = l.field
		}
	}

	vars := c.Variables
	if len(vars) == 0 {
		for _, name := range ds.Names() {
			if name != c.StrataColumn {
				vars = append(vars, name)
			}
		}
	}
	inVars := make(map[string]bool, len(vars))
	for _, name := range vars {
		if inVars[name] {
			return Plan{}, configf("variables", "%q listed more than once", name)
		}
		if !ds.Has(name) {
			return Plan{}, configf("variables", "column %q not found", name)
		}
		inVars[name] = true
	}

	var plan Plan
	excluded := map[string]bool{}
	for _, l := range c.overrideLists() {
		for _, name := range l.names {
			if !inVars[name] && !excluded[name] {
				excluded[name] = true
				plan.Excluded = append(plan.Excluded, name)
			}
		}
	}

	for _, name := range vars {
		col, _ := ds.Column(name)
		kind, err := Classify(col, declared)
		if err != nil {
			return Plan{}, err
		}
		spec := VariableSpec{Name: name, Label: name, Kind: kind}
		if label, ok := c.DisplayNames[name]; ok && label != "" {
			spec.Label = label
		}
		if kind == Binary {
			spec.BinaryLevel = c.BinaryLevels[name]
		}
		plan.Variables = append(plan.Variables, spec)
	}
	return plan, nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
