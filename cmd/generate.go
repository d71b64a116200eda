package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tableone-cli/internal/render"
	"github.com/KaramelBytes/tableone-cli/internal/tableone"
	"github.com/KaramelBytes/tableone-cli/internal/utils"
)

var (
	genLoad   loadFlags
	genTable  tableFlags
	genOutput string
	genQuiet  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [data-file]",
	Short: "Build the summary table for a CSV/TSV/XLSX file",
	Long: `Build the summary table for a data file. Settings come from the global config,
then the table definition (--table, or the nearest tableone.yaml), then flags.
The data file may be omitted when the table definition names a dataset.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := globalConfig()
		if err != nil {
			return err
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		tf, err := genTable.definition(path)
		if err != nil {
			return err
		}
		if path == "" {
			path = tf.DatasetPath()
		}
		if path == "" {
			return errors.New("no data file given and the table definition names no dataset")
		}
		tcfg, err := genTable.config(cmd, tf, g)
		if err != nil {
			return err
		}
		format, err := genTable.outputFormat(cmd, genOutput, g)
		if err != nil {
			return err
		}
		ds, err := genLoad.load(path, g, tf.Sheet)
		if err != nil {
			return err
		}
		tbl, err := tableone.Generate(ds, tcfg)
		if err != nil {
			return err
		}
		reportTable(tbl, genQuiet)

		var buf bytes.Buffer
		if err := render.Render(&buf, format, tbl); err != nil {
			return err
		}
		if genOutput != "" {
			if err := utils.SafeWriteFile(genOutput, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if !genQuiet {
				fmt.Printf("✓ Wrote table to %s\n", genOutput)
			}
			return nil
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	genLoad.register(generateCmd)
	genTable.register(generateCmd)
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "write the table to this path (format from extension unless --format)")
	generateCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "suppress warnings and status output")
}
