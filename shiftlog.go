// Package shiftlog records courier work shifts and derives what they paid:
// costs, net earnings and hourly rate per shift, and totals per ISO week.
//
// A presentation layer opens a Tracker from configuration and calls its
// operations with the raw strings a form produces:
//
//	cfg, err := shiftlog.LoadConfig()
//	...
//	t, err := shiftlog.Open(ctx, cfg)
//	...
//	defer t.Close()
//	shift, err := t.CreateShift(ctx, shiftlog.ShiftInput{Date: "2024-03-04", StartTime: "18:00", EndTime: "22:00", Earnings: "52,40"})
package shiftlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"shiftlog/internal/backend"
	"shiftlog/internal/backup"
	"shiftlog/internal/cache"
	"shiftlog/internal/config"
	"shiftlog/internal/core"
	"shiftlog/internal/log"
	"shiftlog/internal/tracker"
)

type (
	Tracker       = tracker.Service
	Config        = config.Config
	Shift         = core.Shift
	ShiftInput    = core.ShiftInput
	Settings      = core.Settings
	WeeklySummary = core.WeeklySummary
	Date          = core.Date
	Clock         = core.Clock
	Backup        = backup.Bundle
)

var (
	ErrValidation    = core.ErrValidation
	ErrInvalidInput  = core.ErrInvalidInput
	ErrNotFound      = core.ErrNotFound
	ErrInvalidBackup = core.ErrInvalidBackup
)

// BackupFileName is the suggested name for a downloaded backup.
const BackupFileName = backup.FileName

var (
	ParseDate       = core.ParseDate
	ParseClock      = core.ParseClock
	DefaultSettings = core.DefaultSettings
	FormatMoney     = core.FormatMoney
	FormatHours     = core.FormatHours
)

// LoadConfig reads configuration from the environment and an optional .env
// file, and validates it.
func LoadConfig() (*Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Open builds a Tracker on the backend named in cfg. A nil cfg uses the
// defaults: in-memory storage, no events. Close the tracker to release the
// backend.
func Open(ctx context.Context, cfg *Config) (*Tracker, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.New(log.Config{
		Level:   level,
		Handler: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	})

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", bcfg.Type, err)
	}

	opts := []tracker.Option{
		tracker.WithLogger(logger),
		tracker.WithPublisher(result.Publisher),
	}
	if cfg.SummaryCacheSize > 0 {
		opts = append(opts, tracker.WithSummaryCache(
			cache.NewLRUCache[core.WeeklySummary](cfg.SummaryCacheSize, cfg.SummaryCacheTTL)))
	}

	logger.Info("Tracker ready", log.FieldBackend, bcfg.Type.String())
	return tracker.New(result.Repository, opts...), nil
}
