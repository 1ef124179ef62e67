// Package backup encodes and decodes the portable JSON backup of a tracker:
// every shift plus the settings, as one document.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"shiftlog/internal/core"
)

// FileName is the suggested name for a downloaded backup.
const FileName = "courier-tracker-backup.json"

// maxSize bounds the payload accepted by Decode.
const maxSize = 32 << 20

type Bundle struct {
	Shifts    []core.Shift  `json:"shifts"`
	Settings  core.Settings `json:"settings"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Encode writes b as indented JSON.
func Encode(w io.Writer, b Bundle) error {
	if b.Shifts == nil {
		b.Shifts = []core.Shift{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Decode reads and validates a backup. Any problem yields an error wrapping
// core.ErrInvalidBackup: the payload must be a JSON object whose "shifts" is
// an array of valid shifts with distinct ids and whose "settings" is a valid
// settings object. Fields missing from settings take their default value.
// A missing "createdAt" is allowed.
func Decode(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: read: %v", core.ErrInvalidBackup, err)
	}
	if len(data) > maxSize {
		return Bundle{}, fmt.Errorf("%w: larger than %d bytes", core.ErrInvalidBackup, maxSize)
	}

	var raw struct {
		Shifts    json.RawMessage `json:"shifts"`
		Settings  json.RawMessage `json:"settings"`
		CreatedAt *time.Time      `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", core.ErrInvalidBackup, err)
	}
	if kind(raw.Shifts) != '[' {
		return Bundle{}, fmt.Errorf("%w: shifts must be an array", core.ErrInvalidBackup)
	}
	if kind(raw.Settings) != '{' {
		return Bundle{}, fmt.Errorf("%w: settings must be an object", core.ErrInvalidBackup)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw.Shifts, &items); err != nil {
		return Bundle{}, fmt.Errorf("%w: shifts: %v", core.ErrInvalidBackup, err)
	}

	b := Bundle{Shifts: make([]core.Shift, 0, len(items)), Settings: core.DefaultSettings()}
	seen := make(map[int64]struct{}, len(items))
	for i, item := range items {
		var s core.Shift
		if err := json.Unmarshal(item, &s); err != nil {
			return Bundle{}, fmt.Errorf("%w: shift #%d: %v", core.ErrInvalidBackup, i, err)
		}
		if err := s.Validate(); err != nil {
			return Bundle{}, fmt.Errorf("%w: shift #%d: %v", core.ErrInvalidBackup, i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return Bundle{}, fmt.Errorf("%w: duplicate shift id %d", core.ErrInvalidBackup, s.ID)
		}
		seen[s.ID] = struct{}{}
		b.Shifts = append(b.Shifts, s)
	}

	if err := json.Unmarshal(raw.Settings, &b.Settings); err != nil {
		return Bundle{}, fmt.Errorf("%w: settings: %v", core.ErrInvalidBackup, err)
	}
	if err := b.Settings.Validate(); err != nil {
		return Bundle{}, fmt.Errorf("%w: settings: %v", core.ErrInvalidBackup, err)
	}

	if raw.CreatedAt != nil {
		b.CreatedAt = *raw.CreatedAt
	}
	return b, nil
}

// kind returns the first significant byte of a JSON value, or 0 when absent.
func kind(v json.RawMessage) byte {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return 0
	}
	return v[0]
}
