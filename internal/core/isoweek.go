package core

import "fmt"

// ISOWeek returns the ISO-8601 week number (1-53) of d.
func ISOWeek(d Date) int {
	_, week := d.ISOWeek()
	return week
}

// ISOYearWeek returns the ISO-8601 year and week of d. Around New Year the
// ISO year can differ from the calendar year: 2024-12-30 is in week 1 of
// 2025 and 2023-01-01 is in week 52 of 2022.
func ISOYearWeek(d Date) (year, week int) {
	return d.ISOWeek()
}

// WeekKey formats an ISO year and week as "2024-W01".
func WeekKey(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}
