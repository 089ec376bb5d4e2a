// ABOUTME: CLI command for recording a measurement.
// ABOUTME: Validates, classifies, and stores arm/ankle pressures for a patient.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
	"github.com/harperreed/itb/internal/service"
	"github.com/spf13/cobra"
)

var (
	addRecord string
	addPhase  string
)

var addCmd = &cobra.Command{
	Use:     "add <name> <arm> <ankle>",
	Aliases: []string{"a"},
	Short:   "Record a measurement",
	Long: `Compute the ankle-brachial index from arm and ankle systolic pressures
(mmHg) and store it. The store assigns the id and timestamp.

Examples:
  itb add "Maria Silva" 120 96
  itb add "Maria Silva" 120 96 --record 4512
  itb add "Maria Silva" 118 110 --phase post`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := i18n.For(outputLang())

		res, err := svc.Submit(service.SubmitInput{
			Name:          args[0],
			RecordID:      addRecord,
			ArmPressure:   args[1],
			AnklePressure: args[2],
			Phase:         addPhase,
		})
		if err != nil {
			return submitError(t, err)
		}

		out := cmd.OutOrStdout()
		m := res.Record
		color.New(color.FgGreen).Fprintf(out, "✓ %s\n", t.Saved)
		fmt.Fprintf(out, "  %s %s  %s  %s\n",
			color.New(color.Faint).Sprintf("#%d", m.ID),
			m.PatientName,
			t.PhaseText(m.Phase),
			classificationColor(res.Evaluation.Classification).Sprintf("ITB %.2f", m.ITB))
		fmt.Fprintf(out, "  %s\n", t.Classification(res.Evaluation.Classification))

		return nil
	},
}

// submitError localizes validation failures and keeps the cause for errors.Is.
func submitError(t *i18n.Table, err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s (%w)", t.ErrorMessage(err), err)
	}
	return fmt.Errorf("failed to save measurement: %w", err)
}

func init() {
	addCmd.Flags().StringVarP(&addRecord, "record", "r", "", "record / chart identifier")
	addCmd.Flags().StringVarP(&addPhase, "phase", "p", "pre", "treatment phase: pre or post")
	rootCmd.AddCommand(addCmd)
}
