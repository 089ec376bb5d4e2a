// ABOUTME: Excel workbook export using excelize.
// ABOUTME: One sheet with a bold header row and numeric cells for pressures and ITB.
package export

import (
	"fmt"

	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported rows.
const SheetName = "ITB"

func renderXLSX(rows []*models.Measurement, t *i18n.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, 9)
	for _, c := range t.Columns() {
		header = append(header, c)
	}
	header = append(header, t.ColInterpret)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, m := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			m.ID,
			m.PatientName,
			m.RecordID,
			m.RecordedAt.Local().Format(dateLayout),
			m.ArmPressure,
			m.AnklePressure,
			m.ITB,
			t.PhaseText(m.Phase),
			t.Classification(m.Classification()),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "B", 28); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "D", "D", 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
