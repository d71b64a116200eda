package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tableone-cli/internal/config"
	"github.com/KaramelBytes/tableone-cli/internal/dataset"
	"github.com/KaramelBytes/tableone-cli/internal/tableone"
	"github.com/KaramelBytes/tableone-cli/internal/utils"
)

var (
	initLoad        loadFlags
	initStrata      string
	initOutput      string
	initTitle       string
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init <data-file>",
	Short: "Write a " + utils.TableFileName + " with the inferred kind of every column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := initOutput
		if out == "" {
			out = filepath.Join(filepath.Dir(path), utils.TableFileName)
		}
		// Refuse to overwrite an existing definition.
		if _, err := os.Stat(out); err == nil && !initForce {
			return fmt.Errorf("table file already exists at %s (use --force to overwrite)", out)
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat table file: %w", err)
		}

		g, err := globalConfig()
		if err != nil {
			return err
		}
		ds, err := initLoad.load(path, g, "")
		if err != nil {
			return err
		}

		tf := cfgpkg.NewTableFile(initStrata)
		tf.Title = initTitle
		tf.Sheet = initLoad.sheetName
		if rel, err := filepath.Rel(filepath.Dir(out), path); err == nil {
			tf.Dataset = filepath.ToSlash(rel)
		} else {
			tf.Dataset = path
		}

		var p prompter
		if initInteractive {
			p = newPrompter()
			if err := askStrata(p, ds, tf); err != nil {
				return err
			}
		}
		if tf.Strata == "" {
			return fmt.Errorf("--strata is required (or use --interactive)")
		}
		plan, err := inferPlan(ds, tf)
		if err != nil {
			return err
		}
		if p != nil {
			if plan, err = askVariables(p, ds, plan); err != nil {
				return err
			}
		}
		tf.ApplyPlan(plan)
		if err := cfgpkg.SaveTableFile(tf, out); err != nil {
			return err
		}
		fmt.Printf("✓ Table definition written: %s (%d variables, strata %q)\n", out, len(plan.Variables), tf.Strata)
		return nil
	},
}

// inferPlan classifies every column except the strata. Categorical columns
// with exactly two levels are proposed as binary.
func inferPlan(ds *dataset.Dataset, tf *cfgpkg.TableFile) (tableone.Plan, error) {
	c := tableone.DefaultConfig(tf.Strata)
	c.Logger = appLogger()
	plan, err := c.Resolve(ds)
	if err != nil {
		return plan, err
	}
	for i, v := range plan.Variables {
		if v.Kind != tableone.Categorical {
			continue
		}
		col, _ := ds.Column(v.Name)
		if len(tableone.Levels(col, tableone.LevelsSorted)) == 2 {
			plan.Variables[i].Kind = tableone.Binary
		}
	}
	return plan, nil
}

func askStrata(p prompter, ds *dataset.Dataset, tf *cfgpkg.TableFile) error {
	title, err := p.Input("Table title", tf.Title)
	if err != nil {
		return err
	}
	tf.Title = title
	strata, err := p.Select("Grouping (strata) column", ds.Names(), tf.Strata)
	if err != nil {
		return err
	}
	tf.Strata = strata
	return nil
}

// askVariables lets the user drop variables and revise each inferred kind.
func askVariables(p prompter, ds *dataset.Dataset, plan tableone.Plan) (tableone.Plan, error) {
	names := make([]string, len(plan.Variables))
	for i, v := range plan.Variables {
		names[i] = v.Name
	}
	keep, err := p.MultiSelect("Variables to summarize", names, names)
	if err != nil {
		return plan, err
	}
	kept := map[string]bool{}
	for _, k := range keep {
		kept[k] = true
	}
	kinds := []string{
		tableone.Parametric.String(), tableone.Nonparametric.String(),
		tableone.Categorical.String(), tableone.Binary.String(),
	}
	var out tableone.Plan
	for _, v := range plan.Variables {
		if !kept[v.Name] {
			continue
		}
		choice, err := p.Select(fmt.Sprintf("Summary for %q", v.Name), kinds, v.Kind.String())
		if err != nil {
			return plan, err
		}
		k, err := tableone.ParseKind(choice)
		if err != nil {
			return plan, err
		}
		col, _ := ds.Column(v.Name)
		if (k == tableone.Parametric || k == tableone.Nonparametric) && !col.AllNumeric() {
			return plan, fmt.Errorf("%q holds non-numeric values and cannot be summarized as %s", v.Name, k)
		}
		v.Kind = k
		out.Variables = append(out.Variables, v)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initLoad.register(initCmd)
	initCmd.Flags().StringVarP(&initStrata, "strata", "s", "", "grouping column")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "where to write the definition (default: next to the data file)")
	initCmd.Flags().StringVar(&initTitle, "title", "", "table title")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing table file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "choose strata, variables and kinds interactively")
}
