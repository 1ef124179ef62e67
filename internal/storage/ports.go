package storage

import (
	"context"

	"shiftlog/internal/core"
)

// Ports for persistence adapters.
type (
	ShiftStore interface {
		// ListShifts returns every stored shift in insertion order.
		ListShifts(ctx context.Context) ([]core.Shift, error)
		// AppendShift stores a new shift. Its id must not be in use.
		AppendShift(ctx context.Context, s core.Shift) error
		// ReplaceShift overwrites the shift with the same id, or returns
		// core.ErrNotFound.
		ReplaceShift(ctx context.Context, s core.Shift) error
	}

	SettingsStore interface {
		// LoadSettings returns the saved settings merged over the defaults.
		LoadSettings(ctx context.Context) (core.Settings, error)
		SaveSettings(ctx context.Context, s core.Settings) error
	}

	// Restorer swaps the whole persisted state for a backup's content.
	Restorer interface {
		Restore(ctx context.Context, shifts []core.Shift, settings core.Settings) error
	}

	Repository interface {
		ShiftStore
		SettingsStore
		Restorer
		Close() error
	}
)
