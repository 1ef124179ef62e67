package log

import "shiftlog/internal/core"

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldBackend    = "backend"
	FieldPath       = "path"
	FieldShiftID    = "shift_id"
	FieldDate       = "date"
	FieldHours      = "hours"
	FieldOrders     = "orders"
	FieldNet        = "net"
	FieldHourly     = "hourly"
	FieldYear       = "year"
	FieldWeek       = "week"
	FieldShiftCount = "shift_count"
	FieldFuelCost   = "fuel_cost_per_km"
	FieldEventType  = "event_type"
	FieldEventID    = "event_id"
	FieldCached     = "cached_weeks"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpExport  = "export"
	OpImport  = "import"
	OpPublish = "publish"
	OpMigrate = "migrate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithShift adds the identifying and derived fields of a shift
func (f LogFields) WithShift(s core.Shift) LogFields {
	f[FieldShiftID] = s.ID
	f[FieldDate] = s.Date.String()
	f[FieldHours] = s.Hours
	f[FieldOrders] = s.Orders
	f[FieldNet] = s.Net
	f[FieldHourly] = s.Hourly
	return f
}

// WithSummary adds weekly summary fields
func (f LogFields) WithSummary(w core.WeeklySummary) LogFields {
	f[FieldYear] = w.Year
	f[FieldWeek] = w.Week
	f[FieldShiftCount] = w.Shifts
	f[FieldHours] = w.Hours
	f[FieldNet] = w.Net
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
