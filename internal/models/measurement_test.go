// ABOUTME: Tests for Measurement, Phase parsing, and draft construction.
// ABOUTME: Validates phase aliases, defaults, and summary projection.
package models

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		input string
		want  Phase
	}{
		{"", PhasePre},
		{"  ", PhasePre},
		{"pre", PhasePre},
		{"PRE", PhasePre},
		{"Pre-treatment", PhasePre},
		{"Pré-tratamento", PhasePre},
		{"post", PhasePost},
		{"Post-treatment", PhasePost},
		{"Pós-tratamento", PhasePost},
		{"depois", PhasePost},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePhase(tt.input)
			if err != nil {
				t.Fatalf("ParsePhase(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePhase(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePhaseInvalid(t *testing.T) {
	_, err := ParsePhase("during")
	if !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("ParsePhase(during) error = %v, want invalid phase", err)
	}
}

func TestPhaseIsValid(t *testing.T) {
	for _, p := range AllPhases {
		if !p.IsValid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if Phase("Pre-treatment").IsValid() {
		t.Error("display text should not be a valid tag")
	}
}

func TestNewDraft(t *testing.T) {
	e, err := Evaluate("Jane", "120", "96")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	d := NewDraft(e, "  R-42 ", "")
	if d.PatientName != "Jane" {
		t.Errorf("PatientName = %q, want Jane", d.PatientName)
	}
	if d.RecordID != "R-42" {
		t.Errorf("RecordID = %q, want R-42", d.RecordID)
	}
	if d.Phase != PhasePre {
		t.Errorf("Phase = %s, want default pre", d.Phase)
	}
	if d.ITB != e.ITB || d.ArmPressure != 120 || d.AnklePressure != 96 {
		t.Errorf("draft values do not match evaluation: %+v", d)
	}
}

func TestMeasurementSummary(t *testing.T) {
	at := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	m := &Measurement{
		ID:            7,
		PatientName:   "Jane",
		RecordID:      "R1",
		RecordedAt:    at,
		ArmPressure:   120,
		AnklePressure: 54,
		ITB:           0.45,
		Phase:         PhasePost,
	}

	s := m.Summary()
	if s.PatientName != "Jane" || s.RecordID != "R1" || !s.RecordedAt.Equal(at) || s.ITB != 0.45 || s.Phase != PhasePost {
		t.Errorf("Summary() = %+v", s)
	}
	if m.Classification() != SeverePAD {
		t.Errorf("Classification() = %s, want severe_pad", m.Classification())
	}
	if s.Classification() != SeverePAD {
		t.Errorf("Summary.Classification() = %s, want severe_pad", s.Classification())
	}
}
