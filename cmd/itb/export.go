// ABOUTME: CLI command for exporting measurements.
// ABOUTME: Writes xlsx, pdf, csv, json, yaml, or markdown, optionally for one patient.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/itb/internal/export"
	"github.com/harperreed/itb/internal/i18n"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportName   string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export measurements",
	Long: `Export measurements, oldest first.

FORMATS:

  xlsx       Spreadsheet with one row per measurement
  pdf        Printable landscape report
  csv        Comma-separated values
  json       JSON envelope (version, exported_at, filter, measurements)
  yaml       Same envelope as YAML
  markdown   Title plus a Markdown table

OPTIONS:

  --output, -o   Write to file instead of stdout
  --name         Only export this patient (exact match)
  --lang         Header language: pt or en

xlsx and pdf are never written to a terminal; without -o they are saved
as itb_export.xlsx / itb_export.pdf in the current directory.

EXAMPLES:

  itb export xlsx                             # All rows to itb_export.xlsx
  itb export pdf --name "Maria Silva" -o r.pdf
  itb export json -o backup.json
  itb export markdown --lang en`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: formatArgs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}

		lang := outputLang()
		data, err := svc.Export(format, exportName, export.Options{Lang: lang})
		if errors.Is(err, export.ErrNoDataToExport) {
			color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), i18n.For(lang).NoData)
			return nil
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		path := exportOutput
		if path == "" && format.Binary() {
			path = format.Filename()
		}
		if path == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", path)
		return nil
	},
}

func formatArgs() []string {
	out := make([]string, 0, len(export.AllFormats))
	for _, f := range export.AllFormats {
		out = append(out, string(f))
	}
	return out
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportName, "name", "", "only export this patient")
	rootCmd.AddCommand(exportCmd)
}
