package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultFuelCostPerKm is the fuel cost applied when no settings were saved.
const DefaultFuelCostPerKm = 0.15

const dateLayout = "2006-01-02"

type (
	// Date is a calendar date without time of day, stored at UTC midnight.
	Date struct {
		time.Time
	}

	// Settings holds the user-wide accounting parameters.
	Settings struct {
		FuelCostPerKm float64 `json:"fuelCostPerKm"`
	}

	// ShiftInput is the raw, unparsed form data of one shift.
	ShiftInput struct {
		Date      string
		StartTime string
		EndTime   string
		Orders    string
		Earnings  string
		Distance  string
		Parking   string
	}

	// Shift is one recorded work session with its derived metrics.
	Shift struct {
		ID         int64   `json:"id"`
		Date       Date    `json:"date"`
		StartTime  Clock   `json:"startTime"`
		EndTime    Clock   `json:"endTime"`
		Orders     int     `json:"orders"`
		Earnings   float64 `json:"earnings"`
		Distance   float64 `json:"distance"` // km
		Parking    float64 `json:"parking"`
		Hours      float64 `json:"hours"`
		TotalCosts float64 `json:"totalCosts"`
		Net        float64 `json:"net"`
		Hourly     float64 `json:"hourly"`
	}
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("shift not found")
	ErrInvalidBackup = errors.New("invalid backup")
)

// DefaultSettings returns the settings used when nothing was persisted.
func DefaultSettings() Settings {
	return Settings{FuelCostPerKm: DefaultFuelCostPerKm}
}

func (s Settings) Validate() error {
	if math.IsNaN(s.FuelCostPerKm) || math.IsInf(s.FuelCostPerKm, 0) {
		return fmt.Errorf("%w: fuel cost per km must be a finite number", ErrValidation)
	}
	if s.FuelCostPerKm < 0 {
		return fmt.Errorf("%w: fuel cost per km cannot be negative", ErrValidation)
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, fmt.Errorf("%w: zero date", ErrInvalidInput)
	}
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON shadows the RFC 3339 encoding promoted from time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	b, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return []byte(`"` + string(b) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: date must be a JSON string", ErrInvalidInput)
	}
	return d.UnmarshalText([]byte(s[1 : len(s)-1]))
}

// derivedTolerance absorbs float rounding between the stored derived values
// and the ones recomputed here.
const derivedTolerance = 1e-6

// Validate checks a shift as read back from persistence or a backup file:
// its shape, and that hours, net and hourly follow from the raw fields.
// Total costs are not checked since they depend on the fuel cost in effect
// when the shift was written. Negative amounts are accepted here; only form
// input rejects them.
func (s Shift) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: shift id must be positive", ErrValidation)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: shift %d has no date", ErrValidation, s.ID)
	}
	if !s.StartTime.Valid() || !s.EndTime.Valid() {
		return fmt.Errorf("%w: shift %d has an invalid time of day", ErrValidation, s.ID)
	}
	for _, v := range []float64{s.Earnings, s.Distance, s.Parking, s.Hours, s.TotalCosts, s.Net, s.Hourly} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: shift %d has a non-finite amount", ErrValidation, s.ID)
		}
	}

	if hours := ElapsedHours(s.StartTime, s.EndTime); !approxEqual(s.Hours, hours) {
		return fmt.Errorf("%w: shift %d has %v hours, want %v for %s-%s", ErrValidation, s.ID, s.Hours, hours, s.StartTime, s.EndTime)
	}
	if !approxEqual(s.Net, s.Earnings-s.TotalCosts) {
		return fmt.Errorf("%w: shift %d net %v does not equal earnings minus total costs", ErrValidation, s.ID, s.Net)
	}
	if !approxEqual(s.Hourly, s.Net/s.Hours) {
		return fmt.Errorf("%w: shift %d hourly %v does not equal net per hour", ErrValidation, s.ID, s.Hourly)
	}
	return nil
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= derivedTolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
