package tableone

import (
	"fmt"
	"strings"
)

// Kind selects the summary statistic rendered for a variable.
type Kind int

const (
	// Parametric variables render as mean (sd).
	Parametric Kind = iota
	// Nonparametric variables render as median [q1–q3].
	Nonparametric
	// Categorical variables render one count (%) sub-row per level.
	Categorical
	// Binary variables render a single count (%) for one selected level.
	Binary
)

func (k Kind) String() string {
	switch k {
	case Parametric:
		return "parametric"
	case Nonparametric:
		return "nonparametric"
	case Categorical:
		return "categorical"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the names printed by Kind.String plus short aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parametric", "mean", "continuous":
		return Parametric, nil
	case "nonparametric", "np", "median":
		return Nonparametric, nil
	case "categorical", "cat":
		return Categorical, nil
	case "binary", "bin":
		return Binary, nil
	default:
		return 0, fmt.Errorf("unknown variable kind %q", s)
	}
}

// LevelOrder controls how categorical levels are sequenced.
type LevelOrder int

const (
	// LevelsSorted orders levels with dataset.Compare.
	LevelsSorted LevelOrder = iota
	// LevelsAppearance orders levels by first appearance in the column.
	LevelsAppearance
)

func (o LevelOrder) String() string {
	if o == LevelsAppearance {
		return "appearance"
	}
	return "sorted"
}

// ParseLevelOrder maps "sorted" (or "") and "appearance".
func ParseLevelOrder(s string) (LevelOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sorted", "sort":
		return LevelsSorted, nil
	case "appearance", "first", "first-appearance":
		return LevelsAppearance, nil
	default:
		return 0, fmt.Errorf("unknown level order %q (use sorted|appearance)", s)
	}
}
