// ABOUTME: Export of measurement rows to spreadsheet, document, and data formats.
// ABOUTME: Dispatches to xlsx, pdf, csv, json, yaml, and markdown renderers.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
)

// ErrNoDataToExport signals that the filter matched nothing. It is a notice
// for the user, not a failure.
var ErrNoDataToExport = errors.New("no data to export")

// Format is an export file format.
type Format string

const (
	XLSX     Format = "xlsx"
	PDF      Format = "pdf"
	CSV      Format = "csv"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
)

// AllFormats lists every supported format.
var AllFormats = []Format{XLSX, PDF, CSV, JSON, YAML, Markdown}

// ParseFormat maps a name (or common alias) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx", "excel":
		return XLSX, nil
	case "pdf":
		return PDF, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("unknown format: %s (use xlsx, pdf, csv, json, yaml, or markdown)", s)
}

// Filename returns the download file name for the format.
func (f Format) Filename() string {
	ext := string(f)
	if f == Markdown {
		ext = "md"
	}
	return "itb_export." + ext
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case PDF:
		return "application/pdf"
	case CSV:
		return "text/csv; charset=utf-8"
	case JSON:
		return "application/json"
	case YAML:
		return "application/yaml"
	case Markdown:
		return "text/markdown; charset=utf-8"
	}
	return "application/octet-stream"
}

// Binary reports whether the output is unsuitable for printing to a terminal.
func (f Format) Binary() bool {
	return f == XLSX || f == PDF
}

// Options controls rendering.
type Options struct {
	// Lang selects header and label text. Defaults to i18n.Default.
	Lang i18n.Lang
	// Name is the patient filter that produced the rows, shown in titles.
	Name string
	// Now stamps the export; defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Render writes rows in the given format.
func Render(format Format, rows []*models.Measurement, opts Options) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoDataToExport
	}
	t := i18n.For(opts.Lang)

	switch format {
	case XLSX:
		return renderXLSX(rows, t)
	case PDF:
		return renderPDF(rows, t, opts)
	case CSV:
		return renderCSV(rows, t)
	case JSON:
		return renderJSON(rows, opts)
	case YAML:
		return renderYAML(rows, opts)
	case Markdown:
		return renderMarkdown(rows, t, opts), nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// dateLayout is how timestamps appear in human-facing exports.
const dateLayout = "2006-01-02 15:04:05"

// textRow renders one measurement in column order for text formats.
func textRow(m *models.Measurement, t *i18n.Table) []string {
	return []string{
		strconv.FormatInt(m.ID, 10),
		m.PatientName,
		m.RecordID,
		m.RecordedAt.Local().Format(dateLayout),
		formatNumber(m.ArmPressure),
		formatNumber(m.AnklePressure),
		strconv.FormatFloat(m.ITB, 'f', 2, 64),
		t.PhaseText(m.Phase),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
