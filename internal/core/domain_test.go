package core

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftJSONShape(t *testing.T) {
	s := Shift{
		ID:        1710439200000,
		Date:      NewDate(2024, 3, 14),
		StartTime: MustParseClock("18:00"),
		EndTime:   MustParseClock("22:00"),
		Orders:    3,
		Earnings:  30,
		Hours:     4,
		Net:       30,
		Hourly:    7.5,
	}

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "2024-03-14", raw["date"])
	assert.Equal(t, "18:00", raw["startTime"])
	assert.Equal(t, "22:00", raw["endTime"])
	for _, key := range []string{"id", "orders", "earnings", "distance", "parking", "hours", "totalCosts", "net", "hourly"} {
		assert.Contains(t, raw, key)
	}

	var back Shift
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, back)
}

func TestShiftJSONRejectsBadDate(t *testing.T) {
	var s Shift
	err := json.Unmarshal([]byte(`{"id":1,"date":"2024-13-01","startTime":"10:00","endTime":"11:00"}`), &s)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = json.Unmarshal([]byte(`{"id":1,"date":20240101,"startTime":"10:00","endTime":"11:00"}`), &s)
	assert.Error(t, err)
}

func TestShiftValidate(t *testing.T) {
	good := Shift{ID: 1, Date: NewDate(2024, 1, 1), StartTime: MustParseClock("10:00"), EndTime: MustParseClock("11:00"), Hours: 1}
	require.NoError(t, good.Validate())

	bads := []Shift{
		{ID: 0, Date: good.Date, StartTime: good.StartTime, EndTime: good.EndTime},
		{ID: 1, StartTime: good.StartTime, EndTime: good.EndTime},
		{ID: 1, Date: good.Date, StartTime: Clock{Hour: 24}, EndTime: good.EndTime},
		{ID: 1, Date: good.Date, StartTime: good.StartTime, EndTime: good.EndTime, Hours: 1, Net: math.NaN()},
		{ID: 1, Date: good.Date, StartTime: good.StartTime, EndTime: good.EndTime, Hours: -7},
		{ID: 1, Date: good.Date, StartTime: good.StartTime, EndTime: good.EndTime, Hours: 1, Earnings: 10, Net: 5000, Hourly: 5000},
		{ID: 1, Date: good.Date, StartTime: good.StartTime, EndTime: good.EndTime, Hours: 1, Earnings: 10, Net: 10},
	}
	for i, s := range bads {
		assert.ErrorIsf(t, s.Validate(), ErrValidation, "case %d", i)
	}
}

func TestShiftValidateAcceptsStoredValues(t *testing.T) {
	computed, err := ComputeShift(1, ShiftInput{
		Date: "2024-03-04", StartTime: "22:00", EndTime: "01:20",
		Earnings: "41.7", Distance: "17.3", Parking: "1.1",
	}, Settings{FuelCostPerKm: 0.19})
	require.NoError(t, err)
	assert.NoError(t, computed.Validate())

	// Costs written under an older fuel rate and negative amounts both
	// come back from storage as they were saved.
	older := computed
	older.TotalCosts = 9
	older.Net = older.Earnings - older.TotalCosts
	older.Hourly = older.Net / older.Hours
	assert.NoError(t, older.Validate())

	negative := Shift{ID: 2, Date: NewDate(2024, 3, 4), StartTime: MustParseClock("10:00"), EndTime: MustParseClock("12:00"),
		Orders: -1, Earnings: -5, Hours: 2, Net: -5, Hourly: -2.5}
	assert.NoError(t, negative.Validate())
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
	assert.NoError(t, Settings{}.Validate())
	assert.ErrorIs(t, Settings{FuelCostPerKm: -0.1}.Validate(), ErrValidation)
	assert.ErrorIs(t, Settings{FuelCostPerKm: math.Inf(1)}.Validate(), ErrValidation)
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got := DateOf(time.Date(2024, 3, 14, 0, 30, 0, 0, loc))
	assert.Equal(t, NewDate(2024, 3, 14), got)
}
