package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ComputeShift builds a shift with the given id from raw form input, deriving
// hours, costs, net and hourly rate with the supplied settings.
//
// Blank numeric fields and fields that do not parse count as zero. Missing
// date or times are a validation error.
func ComputeShift(id int64, in ShiftInput, settings Settings) (Shift, error) {
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.EndTime) == "" {
		return Shift{}, fmt.Errorf("%w: date, start time and end time are required", ErrValidation)
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return Shift{}, err
	}
	start, err := ParseClock(in.StartTime)
	if err != nil {
		return Shift{}, err
	}
	end, err := ParseClock(in.EndTime)
	if err != nil {
		return Shift{}, err
	}

	shift := Shift{
		ID:        id,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Orders:    ParseIntOr(in.Orders, 0),
		Earnings:  ParseFloatOr(in.Earnings, 0),
		Distance:  ParseFloatOr(in.Distance, 0),
		Parking:   ParseFloatOr(in.Parking, 0),
	}
	if shift.Orders < 0 || shift.Earnings < 0 || shift.Distance < 0 || shift.Parking < 0 {
		return Shift{}, fmt.Errorf("%w: orders, earnings, distance and parking cannot be negative", ErrValidation)
	}

	return RecomputeShift(shift, settings), nil
}

// RecomputeShift re-derives the computed fields of s from its raw fields.
func RecomputeShift(s Shift, settings Settings) Shift {
	s.Hours = ElapsedHours(s.StartTime, s.EndTime)
	s.TotalCosts = s.Distance*settings.FuelCostPerKm + s.Parking
	s.Net = s.Earnings - s.TotalCosts
	s.Hourly = 0
	if s.Hours > 0 {
		s.Hourly = s.Net / s.Hours
	}
	return s
}

// Input converts a stored shift back into form input, e.g. to prefill an
// edit form.
func (s Shift) Input() ShiftInput {
	return ShiftInput{
		Date:      s.Date.String(),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Orders:    strconv.Itoa(s.Orders),
		Earnings:  strconv.FormatFloat(s.Earnings, 'f', -1, 64),
		Distance:  strconv.FormatFloat(s.Distance, 'f', -1, 64),
		Parking:   strconv.FormatFloat(s.Parking, 'f', -1, 64),
	}
}
