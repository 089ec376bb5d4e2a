// ABOUTME: Tests for language tables and negotiation.
// ABOUTME: Checks parsing, Accept-Language matching, and message formatting.
package i18n

import (
	"errors"
	"fmt"
	"testing"

	"github.com/harperreed/itb/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
		ok   bool
	}{
		{"pt", PT, true},
		{"PT-br", PT, true},
		{"en", EN, true},
		{"en-US", EN, true},
		{"", "", false},
		{"fr", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   Lang
	}{
		{"", PT},
		{"en-US,en;q=0.9", EN},
		{"pt-BR,pt;q=0.9,en;q=0.8", PT},
		{"de-DE", PT},
		{"fr;q=0.9, en;q=0.5", EN},
	}
	for _, tt := range tests {
		if got := Match(tt.header, PT); got != tt.want {
			t.Errorf("Match(%q) = %s, want %s", tt.header, got, tt.want)
		}
	}
}

func TestForFallsBackToDefault(t *testing.T) {
	if For("xx").Lang != Default {
		t.Errorf("For(xx) did not fall back to %s", Default)
	}
}

func TestEveryClassificationHasText(t *testing.T) {
	for _, lang := range Supported {
		tbl := For(lang)
		for _, c := range models.AllClassifications() {
			if tbl.Classification(c) == string(c) {
				t.Errorf("%s: no text for %s", lang, c)
			}
		}
	}
}

func TestPhaseText(t *testing.T) {
	if got := For(EN).PhaseText(models.PhasePost); got != "Post-treatment" {
		t.Errorf("PhaseText(post) = %q", got)
	}
	if got := For(PT).PhaseText(models.PhasePre); got != "Pré-tratamento" {
		t.Errorf("PhaseText(pre) = %q", got)
	}
}

func TestResultMessage(t *testing.T) {
	e, err := models.Evaluate("John", "80", "100")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	want := "ITB: 1.25 - ITB 0.9 - 1.3: Normal. - Data saved successfully."
	if got := For(EN).ResultMessage(e); got != want {
		t.Errorf("ResultMessage() = %q, want %q", got, want)
	}
}

func TestErrorMessage(t *testing.T) {
	tbl := For(EN)
	tests := []struct {
		err  error
		want string
	}{
		{&models.ValidationError{Kind: models.MissingName}, tbl.ErrName},
		{&models.ValidationError{Kind: models.InvalidNumber}, tbl.ErrNumber},
		{fmt.Errorf("submit: %w", &models.ValidationError{Kind: models.DivisionByZero}), tbl.ErrZero},
		{&models.ValidationError{Kind: models.InvalidPhase}, tbl.ErrPhase},
		{errors.New("disk full"), tbl.ErrStorage},
	}
	for _, tt := range tests {
		if got := tbl.ErrorMessage(tt.err); got != tt.want {
			t.Errorf("ErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestColumnsOrder(t *testing.T) {
	cols := For(EN).Columns()
	want := []string{"ID", "Name", "Record", "Date", "Arm Pressure (mmHg)", "Ankle Pressure (mmHg)", "ITB", "Moment"}
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d", len(cols), len(want))
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, cols[i], want[i])
		}
	}
}
