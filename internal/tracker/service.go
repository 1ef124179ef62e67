// Package tracker exposes the courier shift operations to a presentation
// layer: recording and editing shifts, settings, weekly summaries, backups
// and reports.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"shiftlog/internal/backup"
	"shiftlog/internal/cache"
	"shiftlog/internal/core"
	"shiftlog/internal/events"
	"shiftlog/internal/log"
	"shiftlog/internal/report"
	"shiftlog/internal/storage"
)

// Service orchestrates shift operations across the repository, the summary
// cache and the event publisher. Writes are serialised.
type Service struct {
	repo      storage.Repository
	publisher events.Publisher
	summaries cache.Cache[core.WeeklySummary]
	now       func() time.Time
	logger    *log.Logger

	mu sync.Mutex
}

type Option func(*Service)

// WithClock overrides the time source used for ids and the current week.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithSummaryCache(c cache.Cache[core.WeeklySummary]) Option {
	return func(s *Service) { s.summaries = c }
}

func New(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: events.Nop{},
		summaries: cache.Nop[core.WeeklySummary]{},
		now:       time.Now,
		logger:    log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(log.ComponentTracker)
	return s
}

// CreateShift computes a new shift from form input with the current settings
// and stores it. Nothing is stored when the input is rejected.
func (s *Service) CreateShift(ctx context.Context, in core.ShiftInput) (core.Shift, error) {
	shift, err := s.createShift(ctx, in)
	if err != nil {
		return core.Shift{}, err
	}
	s.publishShift(ctx, events.TypeShiftCreated, shift)
	return shift, nil
}

func (s *Service) createShift(ctx context.Context, in core.ShiftInput) (core.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return core.Shift{}, fmt.Errorf("load settings: %w", err)
	}
	shifts, err := s.repo.ListShifts(ctx)
	if err != nil {
		return core.Shift{}, fmt.Errorf("list shifts: %w", err)
	}

	id := core.NextID(shifts, s.now().UnixMilli())
	shift, err := core.ComputeShift(id, in, settings)
	if err != nil {
		return core.Shift{}, err
	}
	if err := s.repo.AppendShift(ctx, shift); err != nil {
		return core.Shift{}, fmt.Errorf("save shift: %w", err)
	}
	s.summaries.Clear()

	s.logger.InfoContext(ctx, "Shift recorded", log.NewFields().WithOperation(log.OpCreate).WithShift(shift).ToSlice()...)
	return shift, nil
}

// UpdateShift replaces every field of shift id with the recomputed input,
// using the settings in effect now.
func (s *Service) UpdateShift(ctx context.Context, id int64, in core.ShiftInput) (core.Shift, error) {
	shift, err := s.updateShift(ctx, id, in)
	if err != nil {
		return core.Shift{}, err
	}
	s.publishShift(ctx, events.TypeShiftUpdated, shift)
	return shift, nil
}

func (s *Service) updateShift(ctx context.Context, id int64, in core.ShiftInput) (core.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shifts, err := s.repo.ListShifts(ctx)
	if err != nil {
		return core.Shift{}, fmt.Errorf("list shifts: %w", err)
	}
	if core.FindShift(shifts, id) < 0 {
		return core.Shift{}, fmt.Errorf("%w: id %d", core.ErrNotFound, id)
	}
	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return core.Shift{}, fmt.Errorf("load settings: %w", err)
	}

	shift, err := core.ComputeShift(id, in, settings)
	if err != nil {
		return core.Shift{}, err
	}
	if err := s.repo.ReplaceShift(ctx, shift); err != nil {
		return core.Shift{}, fmt.Errorf("update shift: %w", err)
	}
	s.summaries.Clear()

	s.logger.InfoContext(ctx, "Shift updated", log.NewFields().WithOperation(log.OpUpdate).WithShift(shift).ToSlice()...)
	return shift, nil
}

// ListShifts returns the history, most recently created first.
func (s *Service) ListShifts(ctx context.Context) ([]core.Shift, error) {
	shifts, err := s.repo.ListShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return core.OrderForDisplay(shifts), nil
}

// GetShift returns one shift, e.g. to prefill an edit form via Shift.Input.
func (s *Service) GetShift(ctx context.Context, id int64) (core.Shift, error) {
	shifts, err := s.repo.ListShifts(ctx)
	if err != nil {
		return core.Shift{}, fmt.Errorf("list shifts: %w", err)
	}
	i := core.FindShift(shifts, id)
	if i < 0 {
		return core.Shift{}, fmt.Errorf("%w: id %d", core.ErrNotFound, id)
	}
	return shifts[i], nil
}

// HasShifts reports whether anything was recorded at all.
func (s *Service) HasShifts(ctx context.Context) (bool, error) {
	shifts, err := s.repo.ListShifts(ctx)
	if err != nil {
		return false, fmt.Errorf("list shifts: %w", err)
	}
	return len(shifts) > 0, nil
}

func (s *Service) GetSettings(ctx context.Context) (core.Settings, error) {
	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return core.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// SetSettings persists new settings. Shifts already stored keep the values
// computed when they were written.
func (s *Service) SetSettings(ctx context.Context, settings core.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	err := s.repo.SaveSettings(ctx, settings)
	if err == nil {
		s.summaries.Clear()
	}
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	s.logger.InfoContext(ctx, "Settings saved", log.FieldFuelCost, settings.FuelCostPerKm)
	s.publish(ctx, events.NewEvent(events.TypeSettingsUpdated, s.now()))
	return nil
}

// CurrentWeekSummary summarises the ISO week containing today's local date.
func (s *Service) CurrentWeekSummary(ctx context.Context) (core.WeeklySummary, error) {
	return s.WeekSummary(ctx, core.DateOf(s.now()))
}

// WeekSummary summarises the ISO week containing ref.
func (s *Service) WeekSummary(ctx context.Context, ref core.Date) (core.WeeklySummary, error) {
	key := core.WeekKey(core.ISOYearWeek(ref))

	s.mu.Lock()
	defer s.mu.Unlock()

	if summary, ok := s.summaries.Get(key); ok {
		return summary, nil
	}

	shifts, err := s.repo.ListShifts(ctx)
	if err != nil {
		return core.WeeklySummary{}, fmt.Errorf("list shifts: %w", err)
	}
	summary := core.SummarizeWeek(shifts, ref)
	s.summaries.Set(key, summary)

	s.logger.DebugContext(ctx, "Week summarised", append(log.NewFields().WithSummary(summary).ToSlice(), log.FieldCached, s.summaries.Size())...)
	return summary, nil
}

// ExportBackup snapshots every stored shift and the settings.
func (s *Service) ExportBackup(ctx context.Context) (backup.Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := backup.Bundle{CreatedAt: s.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		shifts, err := s.repo.ListShifts(gctx)
		if err != nil {
			return fmt.Errorf("list shifts: %w", err)
		}
		b.Shifts = shifts
		return nil
	})
	g.Go(func() error {
		settings, err := s.repo.LoadSettings(gctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		b.Settings = settings
		return nil
	})
	if err := g.Wait(); err != nil {
		return backup.Bundle{}, err
	}

	s.logger.InfoContext(ctx, "Backup exported", log.FieldOperation, log.OpExport, log.FieldShiftCount, len(b.Shifts))
	return b, nil
}

// WriteBackup writes the backup document to w.
func (s *Service) WriteBackup(ctx context.Context, w io.Writer) error {
	b, err := s.ExportBackup(ctx)
	if err != nil {
		return err
	}
	return backup.Encode(w, b)
}

// ImportBackup replaces all shifts and settings with the content of a backup
// document and returns the number of shifts restored. A document that fails
// validation changes nothing.
func (s *Service) ImportBackup(ctx context.Context, r io.Reader) (int, error) {
	b, err := backup.Decode(r)
	if err != nil {
		s.logger.WarnContext(ctx, "Backup rejected", log.FieldOperation, log.OpImport, log.FieldError, err)
		return 0, err
	}

	s.mu.Lock()
	err = s.repo.Restore(ctx, b.Shifts, b.Settings)
	if err == nil {
		s.summaries.Clear()
	}
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("restore backup: %w", err)
	}

	s.logger.InfoContext(ctx, "Backup imported", log.FieldOperation, log.OpImport, log.FieldShiftCount, len(b.Shifts))
	e := events.NewEvent(events.TypeBackupImported, s.now())
	e.ShiftCount = len(b.Shifts)
	s.publish(ctx, e)
	return len(b.Shifts), nil
}

// WriteReport writes an XLSX workbook with the history and the current week.
func (s *Service) WriteReport(ctx context.Context, w io.Writer) error {
	shifts, err := s.ListShifts(ctx)
	if err != nil {
		return err
	}
	summary, err := s.CurrentWeekSummary(ctx)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(w, shifts, summary); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Close releases the repository and the publisher.
func (s *Service) Close() error {
	var errs []error
	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) publishShift(ctx context.Context, eventType string, shift core.Shift) {
	e := events.NewEvent(eventType, s.now())
	e.ShiftID = shift.ID
	e.Year, e.Week = core.ISOYearWeek(shift.Date)
	s.publish(ctx, e)
}

// publish runs outside s.mu and never fails the caller: the change is
// already stored.
func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			log.FieldOperation, log.OpPublish,
			log.FieldEventType, e.Type,
			log.FieldEventID, e.ID,
			log.FieldError, err)
	}
}
