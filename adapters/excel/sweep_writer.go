package excel

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"gopower/app"
	"gopower/internal/errors"
	"gopower/models"
)

// SweepWriter exports sweep grids and calculation history to .xlsx
// workbooks for use outside the tool.
type SweepWriter struct {
	dir string
}

// NewSweepWriter creates a writer that places workbooks in dir.
func NewSweepWriter(dir string) *SweepWriter {
	if dir == "" {
		dir = "."
	}
	return &SweepWriter{dir: dir}
}

// WriteSweep writes one sweep result as a workbook with a Grid sheet and a
// Summary sheet, and returns the file path.
func (w *SweepWriter) WriteSweep(result *app.SweepResult) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const gridSheet = "Grid"
	f.SetSheetName("Sheet1", gridSheet)

	if err := w.writeGrid(f, gridSheet, result); err != nil {
		return "", errors.ExportFailed(err)
	}
	if err := w.writeSummary(f, result); err != nil {
		return "", errors.ExportFailed(err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("sweep_%s_%s_%d.xlsx",
		result.Family, result.Unknown, time.Now().Unix()))
	if err := f.SaveAs(path); err != nil {
		return "", errors.ExportFailed(err)
	}
	return path, nil
}

func (w *SweepWriter) writeGrid(f *excelize.File, sheet string, result *app.SweepResult) error {
	header := []interface{}{"x", "y", string(result.Unknown), "solved", "error"}
	if len(result.YValues) == 0 {
		header = []interface{}{"x", string(result.Unknown), "solved", "error"}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	rowNum := 2
	for _, row := range result.Rows {
		for _, pt := range row {
			var cells []interface{}
			if len(result.YValues) == 0 {
				cells = []interface{}{pt.X, pt.Value, pt.Solved, pt.Error}
			} else {
				cells = []interface{}{pt.X, pt.Y, pt.Value, pt.Solved, pt.Error}
			}
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func (w *SweepWriter) writeSummary(f *excelize.File, result *app.SweepResult) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"family", string(result.Family)},
		{"unknown", string(result.Unknown)},
		{"points", result.Summary.Solved + result.Summary.Failed},
		{"solved", result.Summary.Solved},
		{"failed", result.Summary.Failed},
		{"min", result.Summary.Min},
		{"max", result.Summary.Max},
		{"mean", result.Summary.Mean},
		{"median", result.Summary.Median},
		{"runtime_ms", result.RuntimeMs},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// WriteHistory writes calculation history records as a flat workbook.
func (w *SweepWriter) WriteHistory(calcs []*models.Calculation) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "History"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{
		"id", "family", "unknown", "value", "achieved_power",
		"effect_label", "warnings", "created_at",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", errors.ExportFailed(err)
	}

	for i, calc := range calcs {
		row := []interface{}{
			calc.ID.String(), string(calc.Family), string(calc.Unknown),
			calc.Value, calc.AchievedPower, calc.EffectLabel,
			fmt.Sprintf("%v", calc.Warnings), calc.CreatedAt.Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", errors.ExportFailed(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", errors.ExportFailed(err)
		}
	}

	path := filepath.Join(w.dir, fmt.Sprintf("history_%d.xlsx", time.Now().Unix()))
	if err := f.SaveAs(path); err != nil {
		return "", errors.ExportFailed(err)
	}
	return path, nil
}
