// Package report renders the shift history and a weekly summary as an
// Excel workbook.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"shiftlog/internal/core"
)

const (
	SheetShifts = "Shifts"
	SheetWeek   = "Week"
)

var shiftHeaders = []string{
	"Date", "Start", "End", "Hours", "Orders", "Earnings", "Distance (km)", "Parking", "Total costs", "Net", "Hourly",
}

// WriteXLSX writes a workbook with one row per shift, in the order given, and
// a sheet with the summary of one week.
func WriteXLSX(w io.Writer, shifts []core.Shift, summary core.WeeklySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetShifts); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetWeek); err != nil {
		return fmt.Errorf("create week sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("create number style: %w", err)
	}

	if err := writeShifts(f, shifts, headerStyle, moneyStyle); err != nil {
		return err
	}
	if err := writeWeek(f, summary, headerStyle, moneyStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeShifts(f *excelize.File, shifts []core.Shift, headerStyle, moneyStyle int) error {
	if err := f.SetSheetRow(SheetShifts, "A1", &shiftHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	lastHeader := cellName(len(shiftHeaders), 1)
	if err := f.SetCellStyle(SheetShifts, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, s := range shifts {
		row := []any{
			s.Date.String(),
			s.StartTime.String(),
			s.EndTime.String(),
			s.Hours,
			s.Orders,
			s.Earnings,
			s.Distance,
			s.Parking,
			s.TotalCosts,
			s.Net,
			s.Hourly,
		}
		if err := f.SetSheetRow(SheetShifts, cellName(1, i+2), &row); err != nil {
			return fmt.Errorf("write shift %d: %w", s.ID, err)
		}
	}

	if len(shifts) > 0 {
		if err := f.SetCellStyle(SheetShifts, cellName(4, 2), cellName(len(shiftHeaders), len(shifts)+1), moneyStyle); err != nil {
			return fmt.Errorf("style shifts: %w", err)
		}
	}

	if err := f.SetPanes(SheetShifts, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	return f.SetColWidth(SheetShifts, "A", "K", 13)
}

func writeWeek(f *excelize.File, summary core.WeeklySummary, headerStyle, moneyStyle int) error {
	rows := [][]any{
		{"Week", core.WeekKey(summary.Year, summary.Week)},
		{"Shifts", summary.Shifts},
		{"Hours", summary.Hours},
		{"Orders", summary.Orders},
		{"Net", summary.Net},
		{"Hourly", summary.Hourly},
	}
	for i := range rows {
		if err := f.SetSheetRow(SheetWeek, cellName(1, i+1), &rows[i]); err != nil {
			return fmt.Errorf("write week summary: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetWeek, "A1", "A6", headerStyle); err != nil {
		return fmt.Errorf("style week summary: %w", err)
	}
	if err := f.SetCellStyle(SheetWeek, "B3", "B3", moneyStyle); err != nil {
		return fmt.Errorf("style week summary: %w", err)
	}
	if err := f.SetCellStyle(SheetWeek, "B5", "B6", moneyStyle); err != nil {
		return fmt.Errorf("style week summary: %w", err)
	}
	return f.SetColWidth(SheetWeek, "A", "B", 14)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
