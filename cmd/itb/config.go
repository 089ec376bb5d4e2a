// ABOUTME: CLI commands for viewing and editing configuration.
// ABOUTME: Shows effective settings and persists single keys to the config file.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/itb/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change configuration",
	Long: `View or change itb configuration.

KEYS:

  data_dir   Directory holding itb.db (default ~/.local/share/itb)
  language   Default display language: pt or en (default pt)
  listen     Address for 'itb serve' (default ` + config.DefaultListen + `)

Environment variables ITB_DATA_DIR, ITB_LANGUAGE, and ITB_LISTEN (also read
from a .env file in the working directory) override the file.`,
	Annotations: map[string]string{skipStorage: "true"},
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show effective configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		fmt.Fprintf(out, "%s %s\n", faint.Sprint("config:  "), config.GetConfigPath())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("data_dir:"), cfg.GetDataDir())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("database:"), cfg.DBPath())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("language:"), cfg.GetLanguage())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("listen:  "), cfg.GetListen())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Set a configuration key",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Edit the file alone so env overrides are not persisted.
		fileCfg, err := config.LoadFile(config.GetConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
