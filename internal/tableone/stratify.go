package tableone

import (
	"sort"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
)

// MissingStratumLabel names the column holding rows with a missing strata value.
const MissingStratumLabel = "missing"

// Stratum is one observed strata value and the rows carrying it.
type Stratum struct {
	Label string
	Key   dataset.Value
	Rows  []int
}

// Partition splits the row index by strata value. Strata and Missing are
// disjoint and together cover every row.
type Partition struct {
	Strata  []Stratum
	Missing []int
	Total   int
}

// StrataOrder controls the column order of strata.
type StrataOrder struct {
	// Sorted orders strata with dataset.Compare instead of first appearance.
	Sorted bool
	// Explicit labels come first, in the listed order. Unknown labels are
	// ignored; unlisted strata follow.
	Explicit []string
}

// Stratify groups the rows of col by value.
func Stratify(col dataset.Column, order StrataOrder) Partition {
	p := Partition{Total: col.Len()}
	index := map[dataset.Value]int{}
	for i, v := range col.Values {
		if v.IsMissing() {
			p.Missing = append(p.Missing, i)
			continue
		}
		idx, ok := index[v]
		if !ok {
			idx = len(p.Strata)
			index[v] = idx
			p.Strata = append(p.Strata, Stratum{Label: v.String(), Key: v})
		}
		p.Strata[idx].Rows = append(p.Strata[idx].Rows, i)
	}
	if order.Sorted {
		sort.SliceStable(p.Strata, func(i, j int) bool {
			return dataset.Compare(p.Strata[i].Key, p.Strata[j].Key) < 0
		})
	}
	if len(order.Explicit) > 0 {
		p.Strata = applyExplicitOrder(p.Strata, order.Explicit)
	}
	return p
}

func applyExplicitOrder(strata []Stratum, labels []string) []Stratum {
	out := make([]Stratum, 0, len(strata))
	used := make([]bool, len(strata))
	for _, label := range labels {
		for i, s := range strata {
			if !used[i] && s.Label == label {
				out = append(out, s)
				used[i] = true
				break
			}
		}
	}
	for i, s := range strata {
		if !used[i] {
			out = append(out, s)
		}
	}
	return out
}
