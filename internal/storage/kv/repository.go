package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"shiftlog/internal/core"
	"shiftlog/internal/log"
)

const (
	KeyShifts   = "courier_shifts"
	KeySettings = "courier_settings"
)

// Repository implements storage.Repository on top of a Store. Every write
// reads the whole collection, changes it and writes it back.
type Repository struct {
	store  Store
	logger *log.Logger
}

func NewRepository(store Store, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Discard()
	}
	return &Repository{store: store, logger: logger.WithComponent(log.ComponentStorage)}
}

// NewMemory returns a repository that lives only as long as the process.
func NewMemory(logger *log.Logger) *Repository {
	return NewRepository(NewMemoryStore(), logger)
}

// NewFile returns a repository backed by JSON files in dir.
func NewFile(dir string, logger *log.Logger) (*Repository, error) {
	store, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return NewRepository(store, logger), nil
}

func (r *Repository) Close() error {
	return nil
}

// ListShifts implements storage.ShiftStore. A corrupt value reads as an empty
// collection and records that fail validation are skipped.
func (r *Repository) ListShifts(ctx context.Context) ([]core.Shift, error) {
	raw, ok, err := r.store.Get(ctx, KeyShifts)
	if err != nil {
		return nil, fmt.Errorf("get shifts: %w", err)
	}
	if !ok {
		return []core.Shift{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		r.logger.WarnContext(ctx, "Stored shifts are corrupt, starting empty", log.FieldError, err)
		return []core.Shift{}, nil
	}

	shifts := make([]core.Shift, 0, len(items))
	for i, item := range items {
		var s core.Shift
		err := json.Unmarshal(item, &s)
		if err == nil {
			err = s.Validate()
		}
		if err != nil {
			r.logger.WarnContext(ctx, "Skipping invalid stored shift", "index", i, log.FieldError, err)
			continue
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

// AppendShift implements storage.ShiftStore
func (r *Repository) AppendShift(ctx context.Context, s core.Shift) error {
	shifts, err := r.ListShifts(ctx)
	if err != nil {
		return err
	}
	if core.FindShift(shifts, s.ID) >= 0 {
		return fmt.Errorf("append shift: id %d already exists", s.ID)
	}
	return r.saveShifts(ctx, append(shifts, s))
}

// ReplaceShift implements storage.ShiftStore
func (r *Repository) ReplaceShift(ctx context.Context, s core.Shift) error {
	shifts, err := r.ListShifts(ctx)
	if err != nil {
		return err
	}
	i := core.FindShift(shifts, s.ID)
	if i < 0 {
		return fmt.Errorf("%w: id %d", core.ErrNotFound, s.ID)
	}
	shifts[i] = s
	return r.saveShifts(ctx, shifts)
}

// LoadSettings implements storage.SettingsStore. Saved fields override the
// defaults; a corrupt value yields the defaults.
func (r *Repository) LoadSettings(ctx context.Context) (core.Settings, error) {
	settings := core.DefaultSettings()

	raw, ok, err := r.store.Get(ctx, KeySettings)
	if err != nil {
		return settings, fmt.Errorf("get settings: %w", err)
	}
	if !ok {
		return settings, nil
	}

	merged := core.DefaultSettings()
	if err := json.Unmarshal(raw, &merged); err != nil {
		r.logger.WarnContext(ctx, "Stored settings are corrupt, using defaults", log.FieldError, err)
		return settings, nil
	}
	if err := merged.Validate(); err != nil {
		r.logger.WarnContext(ctx, "Stored settings are invalid, using defaults", log.FieldError, err)
		return settings, nil
	}
	return merged, nil
}

// SaveSettings implements storage.SettingsStore
func (r *Repository) SaveSettings(ctx context.Context, s core.Settings) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := r.store.Set(ctx, KeySettings, b); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Restore implements storage.Restorer. The two keys are written one after the
// other; if the second write fails the first is rolled back.
func (r *Repository) Restore(ctx context.Context, shifts []core.Shift, settings core.Settings) error {
	previous, hadPrevious, err := r.store.Get(ctx, KeyShifts)
	if err != nil {
		return fmt.Errorf("get shifts: %w", err)
	}

	if err := r.saveShifts(ctx, shifts); err != nil {
		return err
	}
	if err := r.SaveSettings(ctx, settings); err != nil {
		if !hadPrevious {
			previous = []byte("[]")
		}
		if rbErr := r.store.Set(ctx, KeyShifts, previous); rbErr != nil {
			r.logger.ErrorContext(ctx, "Failed to roll back shifts after settings write error", log.FieldError, rbErr)
		}
		return err
	}
	return nil
}

func (r *Repository) saveShifts(ctx context.Context, shifts []core.Shift) error {
	if shifts == nil {
		shifts = []core.Shift{}
	}
	b, err := json.Marshal(shifts)
	if err != nil {
		return fmt.Errorf("marshal shifts: %w", err)
	}
	if err := r.store.Set(ctx, KeyShifts, b); err != nil {
		return fmt.Errorf("save shifts: %w", err)
	}
	return nil
}
