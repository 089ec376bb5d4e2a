// ABOUTME: Ankle-brachial index evaluation and classification bands.
// ABOUTME: Validates raw form input, computes ankle/arm, and picks the first matching band.
package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Classification is the stable tag for an interpretation band.
// Display text lives in the i18n package.
type Classification string

const (
	ArterialStiffness Classification = "arterial_stiffness"
	Normal            Classification = "normal"
	MildModeratePAD   Classification = "mild_moderate_pad"
	SeverePAD         Classification = "severe_pad"
	CriticalIschemia  Classification = "critical_ischemia"
)

// Band pairs a predicate over the ratio with its classification.
type Band struct {
	Label Classification
	Range string
	Match func(itb float64) bool
}

// bands is evaluated top to bottom; the first match wins. Exactly 0.4 lands
// in SeverePAD because that row is checked before CriticalIschemia.
var bands = []Band{
	{ArterialStiffness, "> 1.3", func(v float64) bool { return v > 1.3 }},
	{Normal, "0.9 - 1.3", func(v float64) bool { return v >= 0.9 && v <= 1.3 }},
	{MildModeratePAD, "0.5 - 0.9", func(v float64) bool { return v >= 0.5 && v < 0.9 }},
	{SeverePAD, "0.4 - 0.5", func(v float64) bool { return v >= 0.4 && v < 0.5 }},
	{CriticalIschemia, "< 0.4", func(v float64) bool { return v < 0.4 }},
}

// Bands returns a copy of the ordered classification table.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// AllClassifications returns every classification in table order.
func AllClassifications() []Classification {
	out := make([]Classification, 0, len(bands))
	for _, b := range bands {
		out = append(out, b.Label)
	}
	return out
}

// Classify returns the first band matching itb. It reports false only for NaN.
func Classify(itb float64) (Classification, bool) {
	for _, b := range bands {
		if b.Match(itb) {
			return b.Label, true
		}
	}
	return "", false
}

// Evaluation is the result of a successful Evaluate call.
type Evaluation struct {
	PatientName    string
	ArmPressure    float64
	AnklePressure  float64
	ITB            float64
	Classification Classification
}

// Evaluate validates the raw inputs and computes the ankle-brachial index.
// Checks run in order and the first failure is returned: missing name,
// unparseable pressure, zero arm pressure.
func Evaluate(patientName, armPressure, anklePressure string) (*Evaluation, error) {
	name := strings.TrimSpace(patientName)
	if name == "" {
		return nil, &ValidationError{Kind: MissingName, Field: "patient_name", Value: patientName}
	}

	e, err := EvaluatePressures(armPressure, anklePressure)
	if err != nil {
		return nil, err
	}
	e.PatientName = name
	return e, nil
}

// EvaluatePressures runs the numeric checks and classification without a
// patient. The returned Evaluation has an empty PatientName.
func EvaluatePressures(armPressure, anklePressure string) (*Evaluation, error) {
	arm, err := parsePressure("arm_pressure", armPressure)
	if err != nil {
		return nil, err
	}
	ankle, err := parsePressure("ankle_pressure", anklePressure)
	if err != nil {
		return nil, err
	}

	if arm == 0 {
		return nil, &ValidationError{Kind: DivisionByZero, Field: "arm_pressure", Value: armPressure}
	}

	itb := ankle / arm
	label, ok := Classify(itb)
	if !ok {
		return nil, &ValidationError{Kind: InvalidNumber, Field: "itb", Value: fmt.Sprint(itb)}
	}

	return &Evaluation{
		ArmPressure:    arm,
		AnklePressure:  ankle,
		ITB:            itb,
		Classification: label,
	}, nil
}

func parsePressure(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Kind: InvalidNumber, Field: field, Value: raw}
	}
	return v, nil
}
