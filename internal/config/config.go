package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
)

// Global holds user defaults shared by every table.
type Global struct {
	// Rendering
	Precision        int    `mapstructure:"precision" yaml:"precision"`
	TrimZeros        bool   `mapstructure:"trim_zeros" yaml:"trim_zeros"`
	AddMissingCounts bool   `mapstructure:"add_missing_counts" yaml:"add_missing_counts"`
	AddTotal         bool   `mapstructure:"add_total" yaml:"add_total"`
	Format           string `mapstructure:"format" yaml:"format"`

	// Dataset loading
	Delimiter          string   `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string   `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string   `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	MissingStrings     []string `mapstructure:"missing_strings" yaml:"missing_strings"`
	MaxRows            int      `mapstructure:"max_rows" yaml:"max_rows"`

	Workers  int    `mapstructure:"workers" yaml:"workers"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"precision", "trim_zeros", "add_missing_counts", "add_total", "format",
	"delimiter", "decimal_separator", "thousands_separator", "missing_strings",
	"max_rows", "workers", "log_level",
}

// DefaultDir returns ~/.tableone.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tableone"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tableone/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLEONE")
	v.AutomaticEnv()

	v.SetDefault("precision", 2)
	v.SetDefault("trim_zeros", false)
	v.SetDefault("add_missing_counts", true)
	v.SetDefault("add_total", false)
	v.SetDefault("format", "text")
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("missing_strings", dataset.DefaultLoadOptions().MissingStrings)
	v.SetDefault("max_rows", 0)
	v.SetDefault("workers", 1)
	v.SetDefault("log_level", "warn")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// LoadOptions converts the loading settings. Separators must be a single
// character; "tab" and "\t" name the tab delimiter.
func (g *Global) LoadOptions() (dataset.LoadOptions, error) {
	opt := dataset.DefaultLoadOptions()
	if g.MissingStrings != nil {
		opt.MissingStrings = g.MissingStrings
	}
	opt.MaxRows = g.MaxRows
	var err error
	if opt.Delimiter, err = ParseRune("delimiter", g.Delimiter); err != nil {
		return opt, err
	}
	if opt.DecimalSeparator, err = ParseRune("decimal_separator", g.DecimalSeparator); err != nil {
		return opt, err
	}
	if opt.ThousandsSeparator, err = ParseRune("thousands_separator", g.ThousandsSeparator); err != nil {
		return opt, err
	}
	return opt, nil
}

// ParseRune reads a one-character setting. Empty means auto-detect (0).
func ParseRune(key, s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "space":
		return ' ', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
