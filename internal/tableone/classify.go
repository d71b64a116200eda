package tableone

import "github.com/KaramelBytes/tableone-cli/internal/dataset"

// Classify picks the summary kind for col. An explicit override wins;
// otherwise a column whose non-missing values are all numbers is parametric
// and anything else is categorical.
func Classify(col dataset.Column, declared map[string]Kind) (Kind, error) {
	if k, ok := declared[col.Name]; ok {
		if k == Nonparametric && !col.AllNumeric() {
			return 0, configf("nonparametric_variables", "%q holds non-numeric values", col.Name)
		}
		return k, nil
	}
	if col.AllNumeric() {
		return Parametric, nil
	}
	return Categorical, nil
}
