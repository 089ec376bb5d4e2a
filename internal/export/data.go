// ABOUTME: JSON, YAML, CSV, and Markdown renderers for measurement exports.
// ABOUTME: JSON/YAML share an envelope with version, tool, and filter metadata.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
	"gopkg.in/yaml.v3"
)

// Data is the envelope for JSON and YAML exports.
type Data struct {
	Version      string                `json:"version" yaml:"version"`
	ExportedAt   time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool         string                `json:"tool" yaml:"tool"`
	Filter       string                `json:"filter,omitempty" yaml:"filter,omitempty"`
	Measurements []*models.Measurement `json:"measurements" yaml:"measurements"`
}

func newData(rows []*models.Measurement, opts Options) *Data {
	return &Data{
		Version:      "1.0",
		ExportedAt:   opts.now(),
		Tool:         "itb",
		Filter:       opts.Name,
		Measurements: rows,
	}
}

func renderJSON(rows []*models.Measurement, opts Options) ([]byte, error) {
	return json.MarshalIndent(newData(rows, opts), "", "  ")
}

func renderYAML(rows []*models.Measurement, opts Options) ([]byte, error) {
	data := newData(rows, opts)

	// Flatten timestamps to RFC3339 and add the interpretation tag so the
	// file reads on its own.
	yamlData := struct {
		Version      string            `yaml:"version"`
		ExportedAt   string            `yaml:"exported_at"`
		Tool         string            `yaml:"tool"`
		Filter       string            `yaml:"filter,omitempty"`
		Measurements []yamlMeasurement `yaml:"measurements"`
	}{
		Version:      data.Version,
		ExportedAt:   data.ExportedAt.Format(time.RFC3339),
		Tool:         data.Tool,
		Filter:       data.Filter,
		Measurements: make([]yamlMeasurement, 0, len(rows)),
	}

	for _, m := range rows {
		yamlData.Measurements = append(yamlData.Measurements, yamlMeasurement{
			ID:             m.ID,
			PatientName:    m.PatientName,
			RecordID:       m.RecordID,
			RecordedAt:     m.RecordedAt.Format(time.RFC3339Nano),
			ArmPressure:    m.ArmPressure,
			AnklePressure:  m.AnklePressure,
			ITB:            m.ITB,
			Phase:          string(m.Phase),
			Classification: string(m.Classification()),
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlMeasurement struct {
	ID             int64   `yaml:"id"`
	PatientName    string  `yaml:"patient_name"`
	RecordID       string  `yaml:"record_id,omitempty"`
	RecordedAt     string  `yaml:"recorded_at"`
	ArmPressure    float64 `yaml:"arm_pressure"`
	AnklePressure  float64 `yaml:"ankle_pressure"`
	ITB            float64 `yaml:"itb"`
	Phase          string  `yaml:"phase"`
	Classification string  `yaml:"classification"`
}

func renderCSV(rows []*models.Measurement, t *i18n.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range rows {
		if err := w.Write(textRow(m, t)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderMarkdown(rows []*models.Measurement, t *i18n.Table, opts Options) []byte {
	var sb strings.Builder
	now := opts.now()

	sb.WriteString(fmt.Sprintf("# %s\n\n", reportTitle(t, opts.Name)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	cols := append(t.Columns(), t.ColInterpret)
	sb.WriteString("| " + strings.Join(cols, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("------|", len(cols)) + "\n")
	for _, m := range rows {
		cells := append(textRow(m, t), t.Classification(m.Classification()))
		for i, c := range cells {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return []byte(sb.String())
}

func reportTitle(t *i18n.Table, name string) string {
	if name == "" {
		return t.ReportTitle
	}
	return t.ReportTitle + " - " + name
}
