package core

// WeeklySummary is the roll-up of all shifts in one ISO week.
type WeeklySummary struct {
	Year   int     `json:"year"`
	Week   int     `json:"week"`
	Shifts int     `json:"shifts"`
	Hours  float64 `json:"hours"`
	Orders int     `json:"orders"`
	Net    float64 `json:"net"`
	Hourly float64 `json:"hourly"`
}

// Empty reports whether no shift fell in the week.
func (w WeeklySummary) Empty() bool {
	return w.Shifts == 0
}

// SummarizeWeek totals the shifts whose ISO week number equals ref's. Only
// the week number is compared: a shift from the same week of another year
// is included. Year reports ref's ISO year.
func SummarizeWeek(shifts []Shift, ref Date) WeeklySummary {
	year, week := ISOYearWeek(ref)
	summary := WeeklySummary{Year: year, Week: week}

	for _, s := range shifts {
		if ISOWeek(s.Date) != week {
			continue
		}
		summary.Shifts++
		summary.Hours += s.Hours
		summary.Orders += s.Orders
		summary.Net += s.Net
	}

	if summary.Hours > 0 {
		summary.Hourly = summary.Net / summary.Hours
	}
	return summary
}
