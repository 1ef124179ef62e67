package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestISOWeek(t *testing.T) {
	cases := []struct {
		date Date
		year int
		week int
	}{
		{NewDate(2024, 1, 1), 2024, 1},
		{NewDate(2023, 1, 1), 2022, 52},
		{NewDate(2020, 12, 31), 2020, 53},
		{NewDate(2021, 1, 3), 2020, 53},
		{NewDate(2021, 1, 4), 2021, 1},
		{NewDate(2024, 12, 30), 2025, 1},
		{NewDate(2026, 1, 1), 2026, 1},
		{NewDate(2027, 1, 1), 2026, 53},
		{NewDate(2024, 6, 15), 2024, 24},
	}
	for _, tc := range cases {
		year, week := ISOYearWeek(tc.date)
		assert.Equalf(t, tc.year, year, "ISO year of %s", tc.date)
		assert.Equalf(t, tc.week, week, "ISO week of %s", tc.date)
		assert.Equal(t, tc.week, ISOWeek(tc.date))
	}
}

func TestWeekKey(t *testing.T) {
	assert.Equal(t, "2024-W01", WeekKey(2024, 1))
	assert.Equal(t, "2020-W53", WeekKey(2020, 53))
}
