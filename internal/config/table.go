package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tableone-cli/internal/tableone"
	"github.com/KaramelBytes/tableone-cli/internal/utils"
)

// TableFileName is the per-study table definition looked up by FindTableFile.
const TableFileName = utils.TableFileName

// TableFile is a persisted table definition. Unset pointer fields inherit
// from Global.
type TableFile struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title,omitempty"`
	Dataset string `yaml:"dataset,omitempty"`
	Sheet   string `yaml:"sheet,omitempty"`

	Strata    string   `yaml:"strata"`
	Variables []string `yaml:"variables,omitempty"`

	BinaryVariables        []string `yaml:"binary_variables,omitempty"`
	CategoricalVariables   []string `yaml:"categorical_variables,omitempty"`
	NonparametricVariables []string `yaml:"nonparametric_variables,omitempty"`

	BinaryLevels map[string]string `yaml:"binary_levels,omitempty"`
	DisplayNames map[string]string `yaml:"display_names,omitempty"`

	Precision        *int  `yaml:"precision,omitempty"`
	TrimZeros        *bool `yaml:"trim_zeros,omitempty"`
	AddMissingCounts *bool `yaml:"add_missing_counts,omitempty"`
	AddTotal         *bool `yaml:"add_total,omitempty"`

	StrataOrder []string `yaml:"strata_order,omitempty"`
	SortStrata  bool     `yaml:"sort_strata,omitempty"`
	LevelOrder  string   `yaml:"level_order,omitempty"`

	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`

	// Not serialized: where the file was loaded from.
	path string `yaml:"-"`
}

// NewTableFile returns a definition with a fresh ID.
func NewTableFile(strata string) *TableFile {
	now := time.Now().UTC()
	return &TableFile{ID: uuid.NewString(), Strata: strata, CreatedAt: now, UpdatedAt: now}
}

// Path returns the file the definition was loaded from or saved to.
func (tf *TableFile) Path() string { return tf.path }

// LoadTableFile reads a table definition. Relative dataset paths are kept as
// written; use DatasetPath to resolve them.
func LoadTableFile(path string) (*TableFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("table file not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read table file: %w", err)
	}
	var tf TableFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("parse table file: %w", err)
	}
	if tf.ID == "" {
		tf.ID = uuid.NewString()
	} else if _, err := uuid.Parse(tf.ID); err != nil {
		return nil, fmt.Errorf("parse table file: invalid id %q: %w", tf.ID, err)
	}
	tf.path = path
	return &tf, nil
}

// SaveTableFile writes tf to path atomically.
func SaveTableFile(tf *TableFile, path string) error {
	if tf.ID == "" {
		tf.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tf.CreatedAt.IsZero() {
		tf.CreatedAt = now
	}
	tf.UpdatedAt = now
	if dir := filepath.Dir(path); dir != "" {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("ensure dir: %w", err)
		}
	}
	b, err := yaml.Marshal(tf)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return err
	}
	tf.path = path
	return nil
}

// DatasetPath resolves Dataset relative to the table file's directory.
func (tf *TableFile) DatasetPath() string {
	if tf.Dataset == "" || filepath.IsAbs(tf.Dataset) || tf.path == "" {
		return tf.Dataset
	}
	return filepath.Join(filepath.Dir(tf.path), tf.Dataset)
}

// ToConfig merges tf over the global defaults. g may be nil.
func (tf *TableFile) ToConfig(g *Global) (tableone.Config, error) {
	cfg := tableone.DefaultConfig(tf.Strata)
	if g != nil {
		cfg.Precision = g.Precision
		cfg.TrimZeros = g.TrimZeros
		cfg.AddMissingCounts = g.AddMissingCounts
		cfg.AddTotalColumn = g.AddTotal
		cfg.Workers = g.Workers
	}
	if tf.Precision != nil {
		cfg.Precision = *tf.Precision
	}
	if tf.TrimZeros != nil {
		cfg.TrimZeros = *tf.TrimZeros
	}
	if tf.AddMissingCounts != nil {
		cfg.AddMissingCounts = *tf.AddMissingCounts
	}
	if tf.AddTotal != nil {
		cfg.AddTotalColumn = *tf.AddTotal
	}
	cfg.Variables = tf.Variables
	cfg.BinaryVariables = tf.BinaryVariables
	cfg.CategoricalVariables = tf.CategoricalVariables
	cfg.NonparametricVariables = tf.NonparametricVariables
	cfg.BinaryLevels = tf.BinaryLevels
	cfg.DisplayNames = tf.DisplayNames
	cfg.StrataOrder = tf.StrataOrder
	cfg.SortStrata = tf.SortStrata
	order, err := tableone.ParseLevelOrder(tf.LevelOrder)
	if err != nil {
		return cfg, fmt.Errorf("level_order: %w", err)
	}
	cfg.LevelOrder = order
	return cfg, nil
}

// ApplyPlan records resolved kinds as explicit override lists so the file
// documents the inferred classification.
func (tf *TableFile) ApplyPlan(p tableone.Plan) {
	tf.Variables = nil
	tf.BinaryVariables, tf.CategoricalVariables, tf.NonparametricVariables = nil, nil, nil
	for _, v := range p.Variables {
		tf.Variables = append(tf.Variables, v.Name)
		switch v.Kind {
		case tableone.Binary:
			tf.BinaryVariables = append(tf.BinaryVariables, v.Name)
		case tableone.Categorical:
			tf.CategoricalVariables = append(tf.CategoricalVariables, v.Name)
		case tableone.Nonparametric:
			tf.NonparametricVariables = append(tf.NonparametricVariables, v.Name)
		}
	}
}
