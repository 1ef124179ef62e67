package shiftlog

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDefaults(t *testing.T) {
	ctx := context.Background()
	tr, err := Open(ctx, nil)
	require.NoError(t, err)
	defer tr.Close()

	has, err := tr.HasShifts(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	settings, err := tr.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestOpenSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := &Config{
		DataBackend:      "sqlite",
		SQLiteDBPath:     filepath.Join(t.TempDir(), "shiftlog.db"),
		SummaryCacheSize: 4,
		SummaryCacheTTL:  time.Minute,
		LogLevel:         "error",
	}

	tr, err := Open(ctx, cfg)
	require.NoError(t, err)

	s, err := tr.CreateShift(ctx, ShiftInput{Date: "2024-03-04", StartTime: "18:00", EndTime: "22:00", Earnings: "52,40", Distance: "30"})
	require.NoError(t, err)
	assert.Equal(t, "47.90 €", FormatMoney(s.Net))
	assert.Equal(t, "4.00 h", FormatHours(s.Hours))

	var buf bytes.Buffer
	require.NoError(t, tr.WriteBackup(ctx, &buf))
	require.NoError(t, tr.Close())

	reopened, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetShift(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = reopened.ImportBackup(ctx, bytes.NewReader([]byte(`{"shifts":5}`)))
	assert.True(t, errors.Is(err, ErrInvalidBackup))
}

func TestOpenInvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), &Config{DataBackend: "sheets", LogLevel: "info"})
	assert.Error(t, err)

	_, err = Open(context.Background(), &Config{DataBackend: "memory", LogLevel: "loud"})
	assert.Error(t, err)
}

func TestBackupFileName(t *testing.T) {
	assert.Equal(t, "courier-tracker-backup.json", BackupFileName)
}
