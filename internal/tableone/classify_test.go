package tableone

import (
	"errors"
	"testing"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
)

func TestClassifyInference(t *testing.T) {
	cases := []struct {
		name string
		col  dataset.Column
		want Kind
	}{
		{"numeric", col("age", 30, 40, nil), Parametric},
		{"strings", col("sex", "f", "m"), Categorical},
		{"bools", col("flag", true, false), Categorical},
		{"mixed", col("x", 1, "a"), Categorical},
		{"all missing", col("empty", nil, nil), Parametric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.col, nil)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestClassifyOverrides(t *testing.T) {
	declared := map[string]Kind{
		"status": Categorical,
		"sex":    Binary,
		"bili":   Nonparametric,
		"stage":  Nonparametric,
	}
	for name, c := range map[string]dataset.Column{
		"status": col("status", 0, 1, 2),
		"sex":    col("sex", "f", "m"),
		"bili":   col("bili", 1.2, 3.4),
	} {
		got, err := Classify(c, declared)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != declared[name] {
			t.Errorf("%s: got %v want %v", name, got, declared[name])
		}
	}

	_, err := Classify(col("stage", "I", "II"), declared)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("nonparametric strings: want ErrConfiguration, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"mean": Parametric, "NP": Nonparametric, " cat ": Categorical, "binary": Binary,
	} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKind("ordinal"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if Parametric.String() != "parametric" {
		t.Errorf("zero Kind should be parametric, got %s", Kind(0))
	}
}
