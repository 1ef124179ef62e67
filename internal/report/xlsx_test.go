package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shiftlog/internal/core"
)

func TestWriteXLSX(t *testing.T) {
	shifts := []core.Shift{
		{
			ID: 2, Date: core.NewDate(2024, 3, 5),
			StartTime: core.MustParseClock("22:00"), EndTime: core.MustParseClock("02:00"),
			Orders: 6, Earnings: 50, Distance: 20, Parking: 0,
			Hours: 4, TotalCosts: 3, Net: 47, Hourly: 11.75,
		},
		{
			ID: 1, Date: core.NewDate(2024, 3, 4),
			StartTime: core.MustParseClock("11:00"), EndTime: core.MustParseClock("14:30"),
			Orders: 4, Earnings: 30, Distance: 10, Parking: 2,
			Hours: 3.5, TotalCosts: 3.5, Net: 26.5, Hourly: 26.5 / 3.5,
		},
	}
	summary := core.SummarizeWeek(shifts, core.NewDate(2024, 3, 6))

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, shifts, summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetShifts, SheetWeek}, f.GetSheetList())

	rows, err := f.GetRows(SheetShifts)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, shiftHeaders, rows[0])
	assert.Equal(t, "2024-03-05", rows[1][0])
	assert.Equal(t, "22:00", rows[1][1])
	assert.Equal(t, "2024-03-04", rows[2][0])

	week, err := f.GetCellValue(SheetWeek, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2024-W10", week)

	count, err := f.GetCellValue(SheetWeek, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", count)
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	summary := core.SummarizeWeek(nil, core.NewDate(2024, 1, 1))
	require.NoError(t, WriteXLSX(&buf, nil, summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetShifts)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	week, err := f.GetCellValue(SheetWeek, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2024-W01", week)
}
