package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tableone-cli/internal/dataset"
	"github.com/KaramelBytes/tableone-cli/internal/tableone"
	"github.com/KaramelBytes/tableone-cli/internal/utils"
)

var (
	inspectLoad loadFlags
	inspectJSON bool
)

// columnInfo is one inspect line.
type columnInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	NonNull int    `json:"non_null"`
	Missing int    `json:"missing"`
	Levels  int    `json:"levels"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <data-file>",
	Short: "Show each column's parsed type, default summary kind and missing count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := globalConfig()
		if err != nil {
			return err
		}
		ds, err := inspectLoad.load(args[0], g, "")
		if err != nil {
			return err
		}
		infos, err := inspectColumns(ds)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if inspectJSON {
			b, err := utils.PrettyJSON(map[string]any{"rows": ds.Rows(), "columns": infos})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(b))
			return err
		}
		fmt.Fprintf(w, "Rows: %d\nColumns: %d\n\n", ds.Rows(), len(infos))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "column\ttype\tkind\tnon-null\tmissing\tlevels\t")
		for _, c := range infos {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t\n", c.Name, c.Type, c.Kind, c.NonNull, c.Missing, c.Levels)
		}
		return tw.Flush()
	},
}

func inspectColumns(ds *dataset.Dataset) ([]columnInfo, error) {
	var out []columnInfo
	for _, name := range ds.Names() {
		col, _ := ds.Column(name)
		kind, err := tableone.Classify(col, nil)
		if err != nil {
			return nil, err
		}
		miss := col.MissingCount()
		out = append(out, columnInfo{
			Name:    name,
			Type:    string(col.Type()),
			Kind:    kind.String(),
			NonNull: col.Len() - miss,
			Missing: miss,
			Levels:  len(tableone.Levels(col, tableone.LevelsSorted)),
		})
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectLoad.register(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print JSON instead of a table")
}
