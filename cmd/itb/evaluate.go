// ABOUTME: CLI command for classifying pressures without saving.
// ABOUTME: Prints the ratio and its interpretation band.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:     "evaluate <arm> <ankle>",
	Aliases: []string{"eval", "e"},
	Short:   "Classify pressures without saving",
	Long: `Compute ankle / arm and print the classification. Nothing is stored.

Examples:
  itb evaluate 120 96
  itb evaluate 100 40 --lang en`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		t := i18n.For(outputLang())

		e, err := models.EvaluatePressures(args[0], args[1])
		if err != nil {
			return submitError(t, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), classificationColor(e.Classification).Sprintf(
			"ITB: %.2f - %s", e.ITB, t.Classification(e.Classification)))
		return nil
	},
}

// classificationColor highlights how urgent a band is.
func classificationColor(c models.Classification) *color.Color {
	switch c {
	case models.Normal:
		return color.New(color.FgGreen)
	case models.ArterialStiffness, models.MildModeratePAD:
		return color.New(color.FgYellow)
	case models.SeverePAD, models.CriticalIschemia:
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.Reset)
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
