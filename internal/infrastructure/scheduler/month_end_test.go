package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	reportapp "github.com/smbc/backend/internal/application/report"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exportCall struct {
	venture ledger.Venture
	kind    string
	month   string
	format  string
}

type fakeExporter struct {
	mu      sync.Mutex
	calls   []exportCall
	failFor ledger.Venture
}

func (f *fakeExporter) Export(_ context.Context, v ledger.Venture, kind, month, format string) (*reportapp.ExportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, exportCall{v, kind, month, format})
	if v == f.failFor {
		return nil, errors.New("storage unavailable")
	}
	return &reportapp.ExportResult{Filename: "r", ArchiveKey: "s3://reports/" + string(v)}, nil
}

func (f *fakeExporter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	return loc
}

func newArchiver(t *testing.T, exp Exporter, at time.Time) *MonthEndArchiver {
	t.Helper()
	a, err := NewMonthEndArchiver(DefaultMonthEndConfig(at.Location()), exp, nil)
	require.NoError(t, err)
	a.SetClock(func() time.Time { return at })
	return a
}

func TestMonthEndArchiverRunsOncePerMonth(t *testing.T) {
	loc := manila(t)
	exp := &fakeExporter{}
	a := newArchiver(t, exp, time.Date(2026, time.March, 1, 2, 30, 0, 0, loc))

	assert.True(t, a.checkAndTrigger(context.Background()))
	assert.Equal(t, 9, exp.count(), "3 ventures x 3 jobs")
	for _, c := range exp.calls {
		assert.Equal(t, "2026-02", c.month)
	}

	assert.False(t, a.checkAndTrigger(context.Background()))
	assert.Equal(t, 9, exp.count())
}

func TestMonthEndArchiverWaitsForScheduledTime(t *testing.T) {
	loc := manila(t)
	tests := []struct {
		name string
		at   time.Time
	}{
		{"before the hour", time.Date(2026, time.March, 1, 1, 59, 0, 0, loc)},
		{"not the first day", time.Date(2026, time.March, 2, 3, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := &fakeExporter{}
			a := newArchiver(t, exp, tt.at)
			assert.False(t, a.checkAndTrigger(context.Background()))
			assert.Zero(t, exp.count())
		})
	}
}

func TestMonthEndArchiverUsesBusinessTimezone(t *testing.T) {
	loc := manila(t)
	exp := &fakeExporter{}
	// 18:30 UTC on the last day of February is 02:30 on 1 March in Manila
	a := newArchiver(t, exp, time.Date(2026, time.February, 28, 18, 30, 0, 0, time.UTC))
	a.config.Location = loc

	assert.True(t, a.checkAndTrigger(context.Background()))
	assert.Equal(t, "2026-02", exp.calls[0].month)
}

func TestMonthEndArchiverRetriesAfterFailure(t *testing.T) {
	loc := manila(t)
	exp := &fakeExporter{failFor: ledger.VentureCatering}
	a := newArchiver(t, exp, time.Date(2026, time.January, 1, 3, 0, 0, 0, loc))

	assert.False(t, a.checkAndTrigger(context.Background()))
	assert.Equal(t, 9, exp.count(), "other ventures are still exported")

	exp.failFor = ""
	assert.True(t, a.checkAndTrigger(context.Background()))
	assert.Equal(t, "2025-12", exp.calls[len(exp.calls)-1].month)
}

func TestArchiveMonthRejectsOpenMonth(t *testing.T) {
	loc := manila(t)
	a := newArchiver(t, &fakeExporter{}, time.Date(2026, time.March, 15, 10, 0, 0, 0, loc))
	assert.ErrorIs(t, a.ArchiveMonth(context.Background(), "2026-03"), ErrMonthNotClosed)
	assert.NoError(t, a.ArchiveMonth(context.Background(), "2026-02"))
}

func TestArchiveMonthReportsUnarchivedExports(t *testing.T) {
	loc := manila(t)
	exp := exporterFunc(func(context.Context, ledger.Venture, string, string, string) (*reportapp.ExportResult, error) {
		return &reportapp.ExportResult{Filename: "r"}, nil
	})
	a := newArchiver(t, exp, time.Date(2026, time.March, 15, 10, 0, 0, 0, loc))
	assert.ErrorContains(t, a.ArchiveMonth(context.Background(), "2026-02"), "not archived")
}

func TestNewMonthEndArchiverValidatesConfig(t *testing.T) {
	cfg := DefaultMonthEndConfig(time.UTC)
	cfg.Hour = 24
	_, err := NewMonthEndArchiver(cfg, &fakeExporter{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultMonthEndConfig(time.UTC)
	cfg.Jobs = nil
	_, err = NewMonthEndArchiver(cfg, &fakeExporter{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMonthEndArchiverStartStop(t *testing.T) {
	cfg := DefaultMonthEndConfig(time.UTC)
	cfg.CheckInterval = 5 * time.Millisecond
	exp := &fakeExporter{}
	a, err := NewMonthEndArchiver(cfg, exp, nil)
	require.NoError(t, err)
	a.SetClock(func() time.Time { return time.Date(2026, time.May, 1, 4, 0, 0, 0, time.UTC) })

	require.NoError(t, a.Start(context.Background()))
	require.NoError(t, a.Start(context.Background()))
	assert.Eventually(t, func() bool { return exp.count() == 9 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Stop(ctx))
	require.NoError(t, a.Stop(ctx))
}

type exporterFunc func(ctx context.Context, v ledger.Venture, kind, month, format string) (*reportapp.ExportResult, error)

func (f exporterFunc) Export(ctx context.Context, v ledger.Venture, kind, month, format string) (*reportapp.ExportResult, error) {
	return f(ctx, v, kind, month, format)
}
