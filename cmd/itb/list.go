// ABOUTME: CLI command for listing recent measurements.
// ABOUTME: Shows the summary projection, most recent first.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/itb/internal/i18n"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent measurements",
	Long: `List recent measurements across all patients, most recent first.

OUTPUT FORMAT:

  Each line shows: TIMESTAMP  NAME  RECORD  ITB  PHASE

EXAMPLES:

  itb list            # Last 20 measurements
  itb list -n 50      # Last 50
  itb list -n 0       # Everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := i18n.For(outputLang())

		summaries, err := svc.Summaries()
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(summaries) == 0 {
			fmt.Fprintln(out, t.NoHistory)
			return nil
		}
		if listLimit > 0 && len(summaries) > listLimit {
			summaries = summaries[:listLimit]
		}

		faint := color.New(color.Faint)
		for _, s := range summaries {
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				faint.Sprint(s.RecordedAt.Local().Format("2006-01-02 15:04")),
				padRight(truncate(s.PatientName, 24), 24),
				faint.Sprint(padRight(truncate(s.RecordID, 10), 10)),
				classificationColor(s.Classification()).Sprintf("%.2f", s.ITB),
				t.PhaseText(s.Phase))
		}

		return nil
	},
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results (0 for all)")
	rootCmd.AddCommand(listCmd)
}
