// ABOUTME: CLI command for one patient's measurement history.
// ABOUTME: Prints full rows oldest first with pressures and interpretation.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/itb/internal/i18n"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history <name>",
	Aliases: []string{"h"},
	Short:   "Show a patient's measurements",
	Long: `Show every measurement for one patient, oldest first. The name must
match exactly.

Examples:
  itb history "Maria Silva"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := i18n.For(outputLang())

		rows, err := svc.History(args[0])
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, t.NoHistory)
			return nil
		}

		faint := color.New(color.Faint)
		color.New(color.Bold).Fprintln(out, rows[0].PatientName)
		for _, m := range rows {
			fmt.Fprintf(out, "  %s %s %s %6.0f/%-6.0f %s %s\n",
				faint.Sprintf("#%-4d", m.ID),
				faint.Sprint(m.RecordedAt.Local().Format("2006-01-02 15:04")),
				padRight(truncate(m.RecordID, 10), 10),
				m.AnklePressure, m.ArmPressure,
				classificationColor(m.Classification()).Sprintf("%.2f", m.ITB),
				t.PhaseText(m.Phase))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
