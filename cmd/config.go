package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/tableone-cli/internal/config"
	"github.com/KaramelBytes/tableone-cli/internal/render"
	"github.com/KaramelBytes/tableone-cli/internal/tableone"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tableone defaults",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := globalConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "precision: %d\n", c.Precision)
		fmt.Fprintf(w, "trim_zeros: %t\n", c.TrimZeros)
		fmt.Fprintf(w, "add_missing_counts: %t\n", c.AddMissingCounts)
		fmt.Fprintf(w, "add_total: %t\n", c.AddTotal)
		fmt.Fprintf(w, "format: %s\n", c.Format)
		fmt.Fprintf(w, "delimiter: %s\n", orAuto(c.Delimiter))
		fmt.Fprintf(w, "decimal_separator: %s\n", orAuto(c.DecimalSeparator))
		fmt.Fprintf(w, "thousands_separator: %s\n", orAuto(c.ThousandsSeparator))
		fmt.Fprintf(w, "missing_strings: %q\n", c.MissingStrings)
		fmt.Fprintf(w, "max_rows: %d\n", c.MaxRows)
		fmt.Fprintf(w, "workers: %d\n", c.Workers)
		fmt.Fprintf(w, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  "Set a config value and save to disk. Keys: " + strings.Join(cfgpkg.Keys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := globalConfig()
		if err != nil {
			return err
		}
		if err := setConfigKey(c, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func setConfigKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "precision":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 || i > tableone.MaxPrecision {
			return fmt.Errorf("invalid precision %q: want an integer in [0, %d]", val, tableone.MaxPrecision)
		}
		c.Precision = i
	case "trim_zeros", "add_missing_counts", "add_total":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %w", key, err)
		}
		switch key {
		case "trim_zeros":
			c.TrimZeros = b
		case "add_missing_counts":
			c.AddMissingCounts = b
		default:
			c.AddTotal = b
		}
	case "format":
		f, err := render.ParseFormat(val)
		if err != nil {
			return err
		}
		c.Format = string(f)
	case "delimiter", "decimal_separator", "thousands_separator":
		if _, err := cfgpkg.ParseRune(key, val); err != nil {
			return err
		}
		switch key {
		case "delimiter":
			c.Delimiter = val
		case "decimal_separator":
			c.DecimalSeparator = val
		default:
			c.ThousandsSeparator = val
		}
	case "missing_strings":
		parts := strings.Split(val, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		c.MissingStrings = parts
	case "max_rows", "workers":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		if key == "max_rows" {
			c.MaxRows = i
		} else {
			c.Workers = i
		}
	case "log_level":
		if _, err := zap.ParseAtomicLevel(val); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
		c.LogLevel = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func orAuto(s string) string {
	if s == "" {
		return "(auto)"
	}
	return s
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
