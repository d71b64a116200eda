package tableone

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks every fatal configuration problem. Use errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigError describes a fatal configuration problem; no table is produced.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Msg)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// WarningKind classifies non-fatal conditions found while summarizing.
type WarningKind string

const (
	// WarnEmptyStatistic: a (variable, column) pair had no non-missing values.
	WarnEmptyStatistic WarningKind = "empty_statistic"
	// WarnUndefinedSD: a parametric cell had a single value, so no sample SD.
	WarnUndefinedSD WarningKind = "undefined_sd"
	// WarnUnmatchedBinaryLevel: a requested binary level matched no value.
	WarnUnmatchedBinaryLevel WarningKind = "unmatched_binary_level"
)

// Warning is reported on the Table; generation continues.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Variable string      `json:"variable"`
	Column   string      `json:"column,omitempty"`
	Level    string      `json:"level,omitempty"`
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnEmptyStatistic:
		return fmt.Sprintf("%s: no non-missing values in %s", w.Variable, w.Column)
	case WarnUndefinedSD:
		return fmt.Sprintf("%s: single value in %s, sd not shown", w.Variable, w.Column)
	case WarnUnmatchedBinaryLevel:
		return fmt.Sprintf("%s: binary level %q not observed, counts are zero", w.Variable, w.Level)
	default:
		return fmt.Sprintf("%s: %s in %s", w.Variable, w.Kind, w.Column)
	}
}
