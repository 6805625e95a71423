package persistence

import (
	"context"

	appbooking "github.com/smbc/backend/internal/application/booking"
	appledger "github.com/smbc/backend/internal/application/ledger"
	"github.com/smbc/backend/internal/domain/booking"
	"github.com/smbc/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application transaction scopes using GORM transactions.
// The invoice counter upsert and the rows stamped with the issued number share one
// transaction, so a rollback undoes both.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Ledger returns the scope used by recording operations
func (s *GormTransactionScope) Ledger() *GormLedgerTransactionScope {
	return &GormLedgerTransactionScope{db: s.db}
}

// Booking returns the scope used by booking operations
func (s *GormTransactionScope) Booking() *GormBookingTransactionScope {
	return &GormBookingTransactionScope{db: s.db}
}

// run executes fn in a transaction and classifies begin/commit failures
func run(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err != nil {
		return classifyError("transaction", err)
	}
	return nil
}

// GormLedgerTransactionScope implements appledger.TransactionScope
type GormLedgerTransactionScope struct {
	db *gorm.DB
}

// Execute runs fn within a database transaction.
// If fn returns an error the transaction is rolled back, otherwise committed.
func (s *GormLedgerTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return run(ctx, s.db, func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormBookingTransactionScope implements appbooking.TransactionScope
type GormBookingTransactionScope struct {
	db *gorm.DB
}

// Execute runs fn within a database transaction.
// If fn returns an error the transaction is rolled back, otherwise committed.
func (s *GormBookingTransactionScope) Execute(ctx context.Context, fn func(repos appbooking.TransactionalRepositories) error) error {
	return run(ctx, s.db, func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// InvoiceSequence returns the invoice counter scoped to the current transaction.
func (r *gormTransactionalRepositories) InvoiceSequence() ledger.InvoiceSequence {
	return NewGormInvoiceSequence(r.tx)
}

// EntryRepo returns the entry repository scoped to the current transaction.
func (r *gormTransactionalRepositories) EntryRepo() ledger.EntryRepository {
	return NewGormEntryRepository(r.tx)
}

// WageRepo returns the wage repository scoped to the current transaction.
func (r *gormTransactionalRepositories) WageRepo() ledger.WageRepository {
	return NewGormWageRepository(r.tx)
}

// BookingRepo returns the booking repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BookingRepo() booking.Repository {
	return NewGormBookingRepository(r.tx)
}

var (
	_ appledger.TransactionScope           = (*GormLedgerTransactionScope)(nil)
	_ appbooking.TransactionScope          = (*GormBookingTransactionScope)(nil)
	_ appledger.TransactionalRepositories  = (*gormTransactionalRepositories)(nil)
	_ appbooking.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
