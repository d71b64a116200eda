package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tableone-cli/internal/render"
	"github.com/KaramelBytes/tableone-cli/internal/tableone"
	"github.com/KaramelBytes/tableone-cli/internal/utils"
)

var (
	batchLoad   loadFlags
	batchTable  tableFlags
	batchOutDir string
	batchQuiet  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Build the same table for multiple CSV/TSV/XLSX files with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		g, err := globalConfig()
		if err != nil {
			return err
		}
		format, err := batchTable.outputFormat(cmd, "", g)
		if err != nil {
			return err
		}
		if batchOutDir != "" {
			if err := utils.EnsureDir(batchOutDir); err != nil {
				return fmt.Errorf("create out dir: %w", err)
			}
		}

		written := map[string]struct{}{}
		total := len(files)
		for i, path := range files {
			if !batchQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			tf, err := batchTable.definition(path)
			if err != nil {
				return err
			}
			tcfg, err := batchTable.config(cmd, tf, g)
			if err != nil {
				return err
			}
			ds, err := batchLoad.load(path, g, tf.Sheet)
			if err != nil {
				return err
			}
			tbl, err := tableone.Generate(ds, tcfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reportTable(tbl, batchQuiet)

			var buf bytes.Buffer
			if err := render.Render(&buf, format, tbl); err != nil {
				return err
			}
			if batchOutDir == "" {
				if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
					return err
				}
				continue
			}
			outFile := batchOutputPath(batchOutDir, path, batchLoad.sheetName, format, written)
			if err := utils.SafeWriteFile(outFile, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			written[outFile] = struct{}{}
			if !batchQuiet {
				fmt.Printf("✓ Wrote table to %s\n", outFile)
			}
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, drops
// duplicates and sorts.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// batchOutputPath names the table for input path. Inputs sharing a base name
// get a numeric suffix instead of overwriting each other.
func batchOutputPath(outDir, path, sheet string, format render.Format, taken map[string]struct{}) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if sheet != "" {
		stem += "__sheet-" + slug(sheet)
	}
	ext := ".table1" + format.Extension()
	outFile := filepath.Join(outDir, stem+ext)
	if _, ok := taken[outFile]; !ok {
		return outFile
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(outDir, fmt.Sprintf("%s__%d%s", stem, idx, ext))
		if _, ok := taken[cand]; !ok {
			if !batchQuiet {
				fmt.Printf("⚠ Detected duplicate name, writing to %s to avoid overwrite.\n", filepath.Base(cand))
			}
			return cand
		}
	}
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "sheet"
	}
	return out
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchLoad.register(batchCmd)
	batchTable.register(batchCmd)
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "directory for per-file tables (default: print to stdout)")
	batchCmd.Flags().BoolVar(&batchQuiet, "quiet", false, "suppress progress and non-essential output")
}
