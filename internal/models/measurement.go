// ABOUTME: Measurement model and Phase enum for ankle-brachial index records.
// ABOUTME: Defines the persisted record, the pre-insert draft, and the summary projection.
package models

import (
	"strings"
	"time"
)

// Phase tags whether a measurement was taken before or after treatment.
type Phase string

const (
	PhasePre  Phase = "pre"
	PhasePost Phase = "post"
)

// AllPhases returns all valid phases in display order.
var AllPhases = []Phase{PhasePre, PhasePost}

// phaseAliases maps accepted spellings to their tag. The display strings
// come from the form, which historically posted the translated label.
var phaseAliases = map[string]Phase{
	"pre":            PhasePre,
	"pre-treatment":  PhasePre,
	"pré-tratamento": PhasePre,
	"pre-tratamento": PhasePre,
	"antes":          PhasePre,
	"post":           PhasePost,
	"post-treatment": PhasePost,
	"pós-tratamento": PhasePost,
	"pos-tratamento": PhasePost,
	"depois":         PhasePost,
}

// ParsePhase maps user input to a Phase. Empty input means PhasePre.
func ParsePhase(s string) (Phase, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return PhasePre, nil
	}
	if p, ok := phaseAliases[key]; ok {
		return p, nil
	}
	return "", &ValidationError{Kind: InvalidPhase, Field: "phase", Value: s}
}

// IsValid reports whether p is one of the known phases.
func (p Phase) IsValid() bool {
	return p == PhasePre || p == PhasePost
}

// Measurement is a persisted ankle-brachial index record.
// ID and RecordedAt are assigned by the store.
type Measurement struct {
	ID            int64     `json:"id"`
	PatientName   string    `json:"patient_name"`
	RecordID      string    `json:"record_id"`
	RecordedAt    time.Time `json:"recorded_at"`
	ArmPressure   float64   `json:"arm_pressure"`
	AnklePressure float64   `json:"ankle_pressure"`
	ITB           float64   `json:"itb"`
	Phase         Phase     `json:"phase"`
}

// Classification returns the interpretation band for the stored ratio.
func (m *Measurement) Classification() Classification {
	c, _ := Classify(m.ITB)
	return c
}

// Summary projects the record for history display.
func (m *Measurement) Summary() *Summary {
	return &Summary{
		PatientName: m.PatientName,
		RecordID:    m.RecordID,
		RecordedAt:  m.RecordedAt,
		ITB:         m.ITB,
		Phase:       m.Phase,
	}
}

// MeasurementDraft is a measurement that has not been stored yet.
type MeasurementDraft struct {
	PatientName   string
	RecordID      string
	ArmPressure   float64
	AnklePressure float64
	ITB           float64
	Phase         Phase
}

// NewDraft builds a draft from a successful evaluation.
func NewDraft(e *Evaluation, recordID string, phase Phase) *MeasurementDraft {
	if phase == "" {
		phase = PhasePre
	}
	return &MeasurementDraft{
		PatientName:   e.PatientName,
		RecordID:      strings.TrimSpace(recordID),
		ArmPressure:   e.ArmPressure,
		AnklePressure: e.AnklePressure,
		ITB:           e.ITB,
		Phase:         phase,
	}
}

// Summary is the history projection of a measurement. Raw pressures and the
// store id are left out.
type Summary struct {
	PatientName string    `json:"patient_name"`
	RecordID    string    `json:"record_id"`
	RecordedAt  time.Time `json:"recorded_at"`
	ITB         float64   `json:"itb"`
	Phase       Phase     `json:"phase"`
}

// Classification returns the interpretation band for the summary's ratio.
func (s *Summary) Classification() Classification {
	c, _ := Classify(s.ITB)
	return c
}
