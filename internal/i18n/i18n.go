// ABOUTME: Portuguese and English string tables for the ITB form, history, and exports.
// ABOUTME: Resolves display text for classification and phase tags and negotiates language.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/itb/internal/models"
	"golang.org/x/text/language"
)

// Lang is a supported display language.
type Lang string

const (
	PT Lang = "pt"
	EN Lang = "en"
)

// Default is the language used when nothing else is requested.
const Default = PT

// Supported lists the available languages in preference order.
var Supported = []Lang{PT, EN}

var matcher = language.NewMatcher([]language.Tag{
	language.Portuguese,
	language.English,
})

// Parse maps a query value such as "en" or "pt-BR" to a Lang.
func Parse(s string) (Lang, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return "", false
	case s == string(PT) || strings.HasPrefix(s, "pt-") || strings.HasPrefix(s, "pt_"):
		return PT, true
	case s == string(EN) || strings.HasPrefix(s, "en-") || strings.HasPrefix(s, "en_"):
		return EN, true
	}
	return "", false
}

// Match negotiates an Accept-Language header. It returns fallback when the
// header is empty or names nothing we support.
func Match(acceptLanguage string, fallback Lang) Lang {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}

// Table holds every user-facing string for one language.
type Table struct {
	Lang Lang

	Title          string
	PatientName    string
	Record         string
	ArmPressure    string
	AnklePressure  string
	Phase          string
	SaveCalculate  string
	Clear          string
	ExportExcel    string
	ExportPDF      string
	LanguageLabel  string
	ResultHint     string
	ColName        string
	ColRecord      string
	ColDate        string
	ColITB         string
	ColPhase       string
	ColID          string
	ColInterpret   string
	ReportTitle    string
	ErrName        string
	ErrNumber      string
	ErrZero        string
	ErrPhase       string
	ErrStorage     string
	NoData         string
	Saved          string
	PhasePre       string
	PhasePost      string
	NoHistory      string
	FilterByName   string
	classification map[models.Classification]string
}

var tables = map[Lang]*Table{
	PT: {
		Lang:          PT,
		Title:         "Calculadora de ITB",
		PatientName:   "Nome do Paciente",
		Record:        "Registro",
		ArmPressure:   "Pressão Braço (mmHg)",
		AnklePressure: "Pressão Tornozelo (mmHg)",
		Phase:         "Momento",
		SaveCalculate: "Salvar e Calcular",
		Clear:         "Limpar",
		ExportExcel:   "Exportar Excel",
		ExportPDF:     "Exportar PDF",
		LanguageLabel: "Idioma",
		ResultHint:    "Resultado aparecerá aqui.",
		ColName:       "Nome",
		ColRecord:     "Registro",
		ColDate:       "Data",
		ColITB:        "ITB",
		ColPhase:      "Momento",
		ColID:         "ID",
		ColInterpret:  "Interpretação",
		ReportTitle:   "Relatório de ITB",
		ErrName:       "Nome do paciente é obrigatório.",
		ErrNumber:     "Insira valores numéricos válidos.",
		ErrZero:       "A pressão do braço não pode ser zero.",
		ErrPhase:      "Momento inválido.",
		ErrStorage:    "Não foi possível acessar o banco de dados.",
		NoData:        "Nenhum dado para exportar.",
		Saved:         "Dados salvos com sucesso.",
		PhasePre:      "Pré-tratamento",
		PhasePost:     "Pós-tratamento",
		NoHistory:     "Nenhum registro ainda.",
		FilterByName:  "Filtrar por nome",
		classification: map[models.Classification]string{
			models.ArterialStiffness: "ITB > 1.3: Possível rigidez arterial.",
			models.Normal:            "ITB 0.9 - 1.3: Normal.",
			models.MildModeratePAD:   "ITB 0.5 - 0.9: DAP leve a moderada.",
			models.SeverePAD:         "ITB 0.4 - 0.5: DAP grave.",
			models.CriticalIschemia:  "ITB < 0.4: Isquemia crítica.",
		},
	},
	EN: {
		Lang:          EN,
		Title:         "ITB Calculator",
		PatientName:   "Patient Name",
		Record:        "Record",
		ArmPressure:   "Arm Pressure (mmHg)",
		AnklePressure: "Ankle Pressure (mmHg)",
		Phase:         "Moment",
		SaveCalculate: "Save and Calculate",
		Clear:         "Clear",
		ExportExcel:   "Export to Excel",
		ExportPDF:     "Export to PDF",
		LanguageLabel: "Language",
		ResultHint:    "Result will appear here.",
		ColName:       "Name",
		ColRecord:     "Record",
		ColDate:       "Date",
		ColITB:        "ITB",
		ColPhase:      "Moment",
		ColID:         "ID",
		ColInterpret:  "Interpretation",
		ReportTitle:   "ITB Report",
		ErrName:       "Patient name is required.",
		ErrNumber:     "Please enter valid numeric values.",
		ErrZero:       "Arm pressure cannot be zero.",
		ErrPhase:      "Invalid moment.",
		ErrStorage:    "The database could not be reached.",
		NoData:        "No data to export.",
		Saved:         "Data saved successfully.",
		PhasePre:      "Pre-treatment",
		PhasePost:     "Post-treatment",
		NoHistory:     "No records yet.",
		FilterByName:  "Filter by name",
		classification: map[models.Classification]string{
			models.ArterialStiffness: "ITB > 1.3: Possible arterial stiffness.",
			models.Normal:            "ITB 0.9 - 1.3: Normal.",
			models.MildModeratePAD:   "ITB 0.5 - 0.9: Mild to moderate PAD.",
			models.SeverePAD:         "ITB 0.4 - 0.5: Severe PAD.",
			models.CriticalIschemia:  "ITB < 0.4: Critical ischemia.",
		},
	},
}

// For returns the table for lang, falling back to Default.
func For(lang Lang) *Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[Default]
}

// Classification returns the display text for a classification tag.
func (t *Table) Classification(c models.Classification) string {
	if s, ok := t.classification[c]; ok {
		return s
	}
	return string(c)
}

// PhaseText returns the display text for a phase tag.
func (t *Table) PhaseText(p models.Phase) string {
	switch p {
	case models.PhasePre:
		return t.PhasePre
	case models.PhasePost:
		return t.PhasePost
	}
	return string(p)
}

// Columns returns the full-row export headers in column order.
func (t *Table) Columns() []string {
	return []string{t.ColID, t.ColName, t.ColRecord, t.ColDate,
		t.ArmPressure, t.AnklePressure, t.ColITB, t.ColPhase}
}

// ResultMessage formats a saved evaluation, e.g.
// "ITB: 0.80 - ITB 0.5 - 0.9: Mild to moderate PAD. - Data saved successfully."
func (t *Table) ResultMessage(e *models.Evaluation) string {
	return fmt.Sprintf("ITB: %.2f - %s - %s", e.ITB, t.Classification(e.Classification), t.Saved)
}

// ErrorMessage maps a submission error to its display text.
func (t *Table) ErrorMessage(err error) string {
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		return t.ErrStorage
	}
	switch verr.Kind {
	case models.MissingName:
		return t.ErrName
	case models.InvalidNumber:
		return t.ErrNumber
	case models.DivisionByZero:
		return t.ErrZero
	case models.InvalidPhase:
		return t.ErrPhase
	}
	return verr.Error()
}
