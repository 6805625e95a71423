package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/smbc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceSequence issues invoice numbers from the invoice_counters table.
// Next is a single upsert that increments and returns the counter, so two
// transactions on the same date serialize on the row and never see the same value.
type GormInvoiceSequence struct {
	db *gorm.DB
}

// NewGormInvoiceSequence creates a sequence bound to db, which may be a transaction
func NewGormInvoiceSequence(db *gorm.DB) *GormInvoiceSequence {
	return &GormInvoiceSequence{db: db}
}

// WithTx returns a sequence bound to tx
func (s *GormInvoiceSequence) WithTx(tx *gorm.DB) *GormInvoiceSequence {
	return &GormInvoiceSequence{db: tx}
}

// Next increments the counter of day and returns the issued number.
// The first call for a day inserts the row with sequence 1.
func (s *GormInvoiceSequence) Next(ctx context.Context, day time.Time) (ledger.InvoiceNumber, error) {
	if day.IsZero() {
		return "", shared.NewValidationError("invoice date is required")
	}
	day = shared.DayOf(day)

	row := models.InvoiceCounterModel{InvoiceDate: day, LastSeq: 1}
	err := s.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "invoice_date"}},
				DoUpdates: clause.Assignments(map[string]any{
					"last_seq":   gorm.Expr("invoice_counters.last_seq + 1"),
					"updated_at": gorm.Expr("excluded.updated_at"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "last_seq"}}},
		).
		Create(&row).Error
	if err != nil {
		return "", classifyError("next invoice number", err)
	}
	if row.LastSeq < 1 {
		return "", shared.NewDomainError(shared.CodeStorageUnavailable, shared.ErrStorageUnavailable.Message)
	}

	return ledger.FormatInvoiceNumber(day, row.LastSeq), nil
}

// Peek returns the number Next would issue for day without reserving it
func (s *GormInvoiceSequence) Peek(ctx context.Context, day time.Time) (ledger.InvoiceNumber, error) {
	counter, err := s.Current(ctx, day)
	if err != nil {
		return "", err
	}
	return ledger.FormatInvoiceNumber(counter.InvoiceDate, counter.LastSeq+1), nil
}

// Current returns the counter row of day; a day without invoices has LastSeq 0
func (s *GormInvoiceSequence) Current(ctx context.Context, day time.Time) (ledger.InvoiceCounter, error) {
	if day.IsZero() {
		return ledger.InvoiceCounter{}, shared.NewValidationError("invoice date is required")
	}
	day = shared.DayOf(day)

	var row models.InvoiceCounterModel
	err := s.db.WithContext(ctx).Where("invoice_date = ?", day).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.InvoiceCounter{InvoiceDate: day}, nil
	}
	if err != nil {
		return ledger.InvoiceCounter{}, classifyError("read invoice counter", err)
	}
	return row.ToDomain(), nil
}

var _ ledger.InvoiceSequence = (*GormInvoiceSequence)(nil)
