// ABOUTME: PDF report export using go-pdf/fpdf.
// ABOUTME: Landscape table with a grey header, beige body, and grid lines.
package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
)

// pdfColumnWidths in millimetres, matching Columns() plus interpretation.
var pdfColumnWidths = []float64{12, 38, 22, 34, 26, 28, 14, 26, 59}

func renderPDF(rows []*models.Measurement, t *i18n.Table, opts Options) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "Letter", "")
	// Core fonts are cp1252; translate accented labels.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(reportTitle(t, opts.Name), true)
	pdf.SetCreator("itb", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(reportTitle(t, opts.Name)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	header := append(t.Columns(), t.ColInterpret)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetDrawColor(0, 0, 0)
	for i, h := range header {
		pdf.CellFormat(pdfColumnWidths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, m := range rows {
		cells := append(textRow(m, t), t.Classification(m.Classification()))
		for i, c := range cells {
			pdf.CellFormat(pdfColumnWidths[i], 7, tr(c), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
