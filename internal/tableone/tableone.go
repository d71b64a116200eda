package tableone

import (
	"go.uber.org/zap"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
)

// Generate validates cfg, then classifies, stratifies, summarizes, formats and
// assembles the table. Configuration problems return an error wrapping
// ErrConfiguration and no table.
func Generate(ds *dataset.Dataset, cfg Config) (*Table, error) {
	log := cfg.logger()
	plan, err := cfg.Resolve(ds)
	if err != nil {
		return nil, err
	}
	for _, v := range plan.Variables {
		log.Debug("classified variable", zap.String("variable", v.Name), zap.Stringer("kind", v.Kind))
	}
	if len(plan.Excluded) > 0 {
		log.Debug("override entries not displayed", zap.Strings("variables", plan.Excluded))
	}

	strata, _ := ds.Column(cfg.StrataColumn)
	part := Stratify(strata, StrataOrder{Sorted: cfg.SortStrata, Explicit: cfg.StrataOrder})
	log.Debug("stratified rows",
		zap.String("strata", cfg.StrataColumn),
		zap.Int("groups", len(part.Strata)),
		zap.Int("missing", len(part.Missing)))

	layout := NewLayout(part, cfg.AddMissingCounts, cfg.AddTotalColumn)
	sums, err := summarizeAll(ds, plan.Variables, layout.Rowsets, cfg.LevelOrder, cfg.Workers)
	if err != nil {
		return nil, err
	}

	t := Assemble(sums, layout, Formatter{Precision: cfg.Precision, TrimZeros: cfg.TrimZeros})
	t.Strata = cfg.StrataColumn
	t.Excluded = plan.Excluded
	for _, s := range sums {
		t.Warnings = append(t.Warnings, s.warnings(layout.Columns)...)
	}
	for _, w := range t.Warnings {
		fields := []zap.Field{
			zap.String("variable", w.Variable),
			zap.String("kind", string(w.Kind)),
		}
		if w.Column != "" {
			fields = append(fields, zap.String("column", w.Column))
		}
		if w.Level != "" {
			fields = append(fields, zap.String("level", w.Level))
		}
		log.Warn("summary incomplete", fields...)
	}
	return &t, nil
}
