// Package sqlite persists shifts and settings in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shiftlog/internal/core"
	"shiftlog/internal/log"

	_ "modernc.org/sqlite"
)

const shiftColumns = `id, date, start_time, end_time, orders, earnings, distance_km, parking, hours, total_costs, net, hourly`

type Repository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*Repository, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := migrateUp(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Debug("SQLite schema up to date", log.FieldPath, dbPath, log.FieldOperation, log.OpMigrate, "schema_version", version)

	return &Repository{db: db, logger: logger}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListShifts implements storage.ShiftStore
func (r *Repository) ListShifts(ctx context.Context) ([]core.Shift, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	defer rows.Close()

	shifts := []core.Shift{}
	for rows.Next() {
		var (
			s                core.Shift
			date, start, end string
		)
		if err := rows.Scan(&s.ID, &date, &start, &end, &s.Orders, &s.Earnings, &s.Distance, &s.Parking,
			&s.Hours, &s.TotalCosts, &s.Net, &s.Hourly); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		if err := decodeTimes(&s, date, start, end); err != nil {
			r.logger.WarnContext(ctx, "Skipping invalid stored shift", log.FieldShiftID, s.ID, log.FieldError, err)
			continue
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shifts: %w", err)
	}
	return shifts, nil
}

// AppendShift implements storage.ShiftStore
func (r *Repository) AppendShift(ctx context.Context, s core.Shift) error {
	if err := insertShift(ctx, r.db, s); err != nil {
		return fmt.Errorf("insert shift %d: %w", s.ID, err)
	}
	return nil
}

// ReplaceShift implements storage.ShiftStore
func (r *Repository) ReplaceShift(ctx context.Context, s core.Shift) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shifts SET date = ?, start_time = ?, end_time = ?, orders = ?, earnings = ?, distance_km = ?,
			parking = ?, hours = ?, total_costs = ?, net = ?, hourly = ?
		WHERE id = ?`,
		s.Date.String(), s.StartTime.String(), s.EndTime.String(), s.Orders, s.Earnings, s.Distance,
		s.Parking, s.Hours, s.TotalCosts, s.Net, s.Hourly, s.ID)
	if err != nil {
		return fmt.Errorf("update shift %d: %w", s.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update shift %d: %w", s.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", core.ErrNotFound, s.ID)
	}
	return nil
}

// LoadSettings implements storage.SettingsStore
func (r *Repository) LoadSettings(ctx context.Context) (core.Settings, error) {
	settings := core.DefaultSettings()
	err := r.db.QueryRowContext(ctx, `SELECT fuel_cost_per_km FROM settings WHERE id = 1`).Scan(&settings.FuelCostPerKm)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultSettings(), nil
	}
	if err != nil {
		return core.DefaultSettings(), fmt.Errorf("query settings: %w", err)
	}
	return settings, nil
}

// SaveSettings implements storage.SettingsStore
func (r *Repository) SaveSettings(ctx context.Context, s core.Settings) error {
	if err := upsertSettings(ctx, r.db, s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Restore implements storage.Restorer in a single transaction.
func (r *Repository) Restore(ctx context.Context, shifts []core.Shift, settings core.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shifts`); err != nil {
		return fmt.Errorf("clear shifts: %w", err)
	}
	for _, s := range shifts {
		if err := insertShift(ctx, tx, s); err != nil {
			return fmt.Errorf("restore shift %d: %w", s.ID, err)
		}
	}
	if err := upsertSettings(ctx, tx, settings); err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	r.logger.InfoContext(ctx, "Restored database from backup", log.FieldShiftCount, len(shifts))
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertShift(ctx context.Context, db execer, s core.Shift) error {
	_, err := db.ExecContext(ctx, `INSERT INTO shifts (`+shiftColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Date.String(), s.StartTime.String(), s.EndTime.String(), s.Orders, s.Earnings, s.Distance,
		s.Parking, s.Hours, s.TotalCosts, s.Net, s.Hourly)
	return err
}

func upsertSettings(ctx context.Context, db execer, s core.Settings) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (id, fuel_cost_per_km) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET fuel_cost_per_km = excluded.fuel_cost_per_km`,
		s.FuelCostPerKm)
	return err
}

func decodeTimes(s *core.Shift, date, start, end string) error {
	var err error
	if s.Date, err = core.ParseDate(date); err != nil {
		return err
	}
	if s.StartTime, err = core.ParseClock(start); err != nil {
		return err
	}
	if s.EndTime, err = core.ParseClock(end); err != nil {
		return err
	}
	return nil
}
