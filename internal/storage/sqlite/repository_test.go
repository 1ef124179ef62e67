package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftlog/internal/core"
	"shiftlog/internal/log"
)

func newTestRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "shifts.db")
	repo, err := NewSQLiteRepository(path, log.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func testShift(t *testing.T, id int64, date, start, end string) core.Shift {
	t.Helper()
	s, err := core.ComputeShift(id, core.ShiftInput{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Orders:    "5",
		Earnings:  "42.5",
		Distance:  "31.2",
		Parking:   "1.5",
	}, core.DefaultSettings())
	require.NoError(t, err)
	return s
}

func TestSQLiteEmptyDatabase(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	shifts, err := repo.ListShifts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, shifts)
	assert.Empty(t, shifts)

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSettings(), settings)
}

func TestSQLiteAppendKeepsInsertionOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	later := testShift(t, 200, "2024-05-02", "22:00", "02:00")
	earlier := testShift(t, 100, "2024-05-01", "11:30", "14:45")
	require.NoError(t, repo.AppendShift(ctx, later))
	require.NoError(t, repo.AppendShift(ctx, earlier))

	shifts, err := repo.ListShifts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Shift{later, earlier}, shifts)

	assert.Error(t, repo.AppendShift(ctx, later), "duplicate id must be rejected")
}

func TestSQLiteReplaceShift(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AppendShift(ctx, testShift(t, 1, "2024-05-01", "10:00", "12:00")))
	require.NoError(t, repo.AppendShift(ctx, testShift(t, 2, "2024-05-02", "10:00", "12:00")))

	updated := testShift(t, 1, "2024-05-03", "09:15", "17:45")
	require.NoError(t, repo.ReplaceShift(ctx, updated))

	shifts, err := repo.ListShifts(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, updated, shifts[0])

	err = repo.ReplaceShift(ctx, testShift(t, 3, "2024-05-03", "09:15", "17:45"))
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestSQLiteSettings(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSettings(ctx, core.Settings{FuelCostPerKm: 0.21}))
	require.NoError(t, repo.SaveSettings(ctx, core.Settings{FuelCostPerKm: 0.25}))

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.25, settings.FuelCostPerKm)
}

func TestSQLiteRestore(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AppendShift(ctx, testShift(t, 1, "2024-05-01", "10:00", "12:00")))

	incoming := []core.Shift{
		testShift(t, 7, "2023-12-31", "20:00", "23:00"),
		testShift(t, 8, "2024-01-01", "20:00", "23:00"),
	}
	require.NoError(t, repo.Restore(ctx, incoming, core.Settings{FuelCostPerKm: 0.3}))

	shifts, err := repo.ListShifts(ctx)
	require.NoError(t, err)
	assert.Equal(t, incoming, shifts)

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.3, settings.FuelCostPerKm)
}

func TestSQLiteRestoreIsAtomic(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	original := testShift(t, 1, "2024-05-01", "10:00", "12:00")
	require.NoError(t, repo.AppendShift(ctx, original))

	dup := testShift(t, 9, "2024-01-01", "20:00", "23:00")
	err := repo.Restore(ctx, []core.Shift{dup, dup}, core.Settings{FuelCostPerKm: 0.3})
	require.Error(t, err)

	shifts, err := repo.ListShifts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Shift{original}, shifts)
	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSettings(), settings)
}

func TestSQLiteReopen(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	s := testShift(t, 1, "2024-05-01", "10:00", "12:00")
	require.NoError(t, repo.AppendShift(ctx, s))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepository(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	shifts, err := reopened.ListShifts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Shift{s}, shifts)
}

func TestSQLiteInMemoryDatabase(t *testing.T) {
	repo, err := NewSQLiteRepository(":memory:", log.Discard())
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	s := testShift(t, 1, "2024-05-01", "18:00", "22:00")
	require.NoError(t, repo.AppendShift(ctx, s))
	require.NoError(t, repo.SaveSettings(ctx, core.Settings{FuelCostPerKm: 0.2}))

	shifts, err := repo.ListShifts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Shift{s}, shifts)
}
