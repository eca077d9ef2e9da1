package service

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

const (
	scansSheet           = "Scans"
	recommendationsSheet = "Recommendations"
)

// ScansXLSX writes one row per scan and one row per recommendation.
func ScansXLSX(scans []dto.SoilScan) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default workbook starts with "Sheet1".
	if err := f.SetSheetName("Sheet1", scansSheet); err != nil {
		return nil, eris.Wrap(err, "export: rename sheet")
	}
	if _, err := f.NewSheet(recommendationsSheet); err != nil {
		return nil, eris.Wrap(err, "export: new sheet")
	}

	scanRows := [][]any{{
		"Scan ID", "Date", "Crop", "Farm Size (acres)",
		"Nitrogen", "Phosphorus", "Potassium", "Organic Carbon", "pH", "Total Cost",
	}}
	recRows := [][]any{{"Scan ID", "Priority", "Fertilizer", "Nutrient", "Quantity", "Unit", "Cost"}}
	for _, sc := range scans {
		v := sc.SoilValues
		scanRows = append(scanRows, []any{
			sc.ID, sc.CreatedAt.Format(time.DateOnly), string(sc.Crop), sc.FarmSize,
			v.N, v.P, v.K, v.OC, v.PH, sc.TotalCost,
		})
		for _, r := range sc.Recommendations {
			recRows = append(recRows, []any{sc.ID, r.Priority, r.Fertilizer, r.Nutrient, r.Quantity, r.Unit, r.Cost})
		}
	}

	if err := writeRows(f, scansSheet, scanRows); err != nil {
		return nil, err
	}
	if err := writeRows(f, recommendationsSheet, recRows); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(scansSheet, "A", "A", 38)
	_ = f.SetColWidth(scansSheet, "B", "D", 14)
	_ = f.SetColWidth(recommendationsSheet, "A", "A", 38)
	_ = f.SetColWidth(recommendationsSheet, "C", "C", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, eris.Wrap(err, "export: write xlsx")
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return eris.Wrap(err, "export: cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return eris.Wrapf(err, "export: write %s row %d", sheet, i+1)
		}
	}
	return nil
}
