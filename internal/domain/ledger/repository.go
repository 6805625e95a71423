package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryFilter narrows entry queries
type EntryFilter struct {
	Venture    Venture
	RefID      *uuid.UUID
	Categories []Category
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	Invoice    *InvoiceNumber
	// Descending orders by date desc, id desc; default is date asc, id asc
	Descending bool
	Limit      int
}

// YearMonth is a calendar month with rows
type YearMonth struct {
	Year  int
	Month time.Month
}

// EntryRepository defines the interface for entry persistence
type EntryRepository interface {
	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// Find returns entries matching the filter
	Find(ctx context.Context, filter EntryFilter) ([]Entry, error)

	// SaveBatch inserts all entries in one statement
	SaveBatch(ctx context.Context, entries []*Entry) error

	// Save updates an existing entry
	Save(ctx context.Context, entry *Entry) error

	// Delete removes an entry
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByRef returns the entries of a category recorded against a project or booking
	FindByRef(ctx context.Context, refID uuid.UUID, category Category) ([]Entry, error)

	// AvailableMonths lists months that have entries, newest first
	AvailableMonths(ctx context.Context, venture Venture) ([]YearMonth, error)
}

// WageRepository defines the interface for wage line persistence
type WageRepository interface {
	// SaveBatch inserts all wage lines in one statement
	SaveBatch(ctx context.Context, lines []*WageLine) error

	// FindByMonth returns the wage lines of a venture for a month
	FindByMonth(ctx context.Context, venture Venture, year int, month time.Month) ([]WageLine, error)
}
