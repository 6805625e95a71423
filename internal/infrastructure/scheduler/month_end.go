package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	reportapp "github.com/smbc/backend/internal/application/report"
	"github.com/smbc/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

// Exporter renders and archives one report
type Exporter interface {
	Export(ctx context.Context, venture ledger.Venture, kind, month, format string) (*reportapp.ExportResult, error)
}

// ArchiveJob is one report exported for every venture
type ArchiveJob struct {
	Kind   string
	Format string
}

// MonthEndConfig holds configuration for the month-end archive trigger
type MonthEndConfig struct {
	// Hour and Minute in Location at which the closed month is archived
	Hour     int
	Minute   int
	Location *time.Location

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration

	Jobs []ArchiveJob
}

// DefaultMonthEndConfig archives the trial balance as PDF and XLSX and the
// balance sheet as PDF at 02:00
func DefaultMonthEndConfig(loc *time.Location) MonthEndConfig {
	return MonthEndConfig{
		Hour:          2,
		Location:      loc,
		CheckInterval: time.Minute,
		Jobs: []ArchiveJob{
			{Kind: reportapp.KindTrialBalance, Format: reportapp.FormatPDF},
			{Kind: reportapp.KindTrialBalance, Format: reportapp.FormatXLSX},
			{Kind: reportapp.KindBalanceSheet, Format: reportapp.FormatPDF},
		},
	}
}

func (c MonthEndConfig) validate() error {
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("%w: hour must be 0-23, got %d", ErrInvalidConfig, c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("%w: minute must be 0-59, got %d", ErrInvalidConfig, c.Minute)
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("%w: check interval must be positive", ErrInvalidConfig)
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("%w: no archive jobs", ErrInvalidConfig)
	}
	return nil
}

// MonthEndArchiver exports the reports of the month that just closed, once
// per month, so the archive holds a copy of every closed month
type MonthEndArchiver struct {
	config   MonthEndConfig
	exporter Exporter
	logger   *zap.Logger
	now      func() time.Time

	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.Mutex
	isRunning    bool
	lastArchived string // month key of the last completed run
}

// NewMonthEndArchiver creates a new month-end archiver
func NewMonthEndArchiver(config MonthEndConfig, exporter Exporter, logger *zap.Logger) (*MonthEndArchiver, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonthEndArchiver{
		config:   config,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// SetClock overrides the time source
func (a *MonthEndArchiver) SetClock(now func() time.Time) {
	a.now = now
}

// Start starts the check loop
func (a *MonthEndArchiver) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.isRunning {
		a.mu.Unlock()
		return nil
	}
	a.isRunning = true
	a.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go a.runLoop(ctx)

	a.logger.Info("Month-end archiver started",
		zap.Int("hour", a.config.Hour),
		zap.Int("minute", a.config.Minute),
		zap.String("location", a.config.Location.String()),
		zap.Duration("check_interval", a.config.CheckInterval),
	)
	return nil
}

// Stop stops the loop and waits for a run in progress
func (a *MonthEndArchiver) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.isRunning {
		a.mu.Unlock()
		return nil
	}
	a.isRunning = false
	a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("Month-end archiver stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *MonthEndArchiver) runLoop(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger archives the previous month on the first day of a month,
// once the configured time has passed. A failed run is retried on the next check.
func (a *MonthEndArchiver) checkAndTrigger(ctx context.Context) bool {
	now := a.now().In(a.config.Location)
	if now.Day() != 1 {
		return false
	}
	if now.Hour() < a.config.Hour || (now.Hour() == a.config.Hour && now.Minute() < a.config.Minute) {
		return false
	}

	month := previousMonth(now)
	a.mu.Lock()
	done := a.lastArchived == month
	a.mu.Unlock()
	if done {
		return false
	}

	if err := a.ArchiveMonth(ctx, month); err != nil {
		a.logger.Error("Month-end archive failed", zap.String("month", month), zap.Error(err))
		return false
	}

	a.mu.Lock()
	a.lastArchived = month
	a.mu.Unlock()
	return true
}

// ArchiveMonth exports every configured report of every venture for month.
// Each export is attempted; the failures are returned together.
func (a *MonthEndArchiver) ArchiveMonth(ctx context.Context, month string) error {
	now := a.now().In(a.config.Location)
	if month >= now.Format("2006-01") {
		return fmt.Errorf("%w: %s", ErrMonthNotClosed, month)
	}

	var errs []error
	archived := 0
	for _, v := range ledger.AllVentures() {
		for _, job := range a.config.Jobs {
			res, err := a.exporter.Export(ctx, v, job.Kind, month, job.Format)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s %s %s: %w", v, job.Kind, job.Format, err))
				continue
			}
			if res.ArchiveKey == "" {
				errs = append(errs, fmt.Errorf("%s %s %s: not archived", v, job.Kind, job.Format))
				continue
			}
			archived++
		}
	}

	a.logger.Info("Month-end archive finished",
		zap.String("month", month),
		zap.Int("archived", archived),
		zap.Int("failed", len(errs)),
	)
	return errors.Join(errs...)
}

func previousMonth(t time.Time) string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, -1, 0).Format("2006-01")
}
