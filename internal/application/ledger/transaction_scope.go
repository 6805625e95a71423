package ledger

import (
	"context"

	"github.com/smbc/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to ledger repositories.
// Every repository handed to fn shares one database transaction, which is
// committed when fn returns nil and rolled back otherwise.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to the current transaction.
//
// InvoiceSequence must be taken from here rather than from a long-lived instance,
// so the counter increment commits or rolls back with the rows stamped with it.
type TransactionalRepositories interface {
	// InvoiceSequence returns the daily invoice counter scoped to the transaction
	InvoiceSequence() ledger.InvoiceSequence
	// EntryRepo returns the entry repository scoped to the transaction
	EntryRepo() ledger.EntryRepository
	// WageRepo returns the wage line repository scoped to the transaction
	WageRepo() ledger.WageRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used in tests.
type NoOpTransactionScope struct {
	sequence ledger.InvoiceSequence
	entries  ledger.EntryRepository
	wages    ledger.WageRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	sequence ledger.InvoiceSequence,
	entries ledger.EntryRepository,
	wages ledger.WageRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		sequence: sequence,
		entries:  entries,
		wages:    wages,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceSequence returns the invoice sequence.
func (s *NoOpTransactionScope) InvoiceSequence() ledger.InvoiceSequence {
	return s.sequence
}

// EntryRepo returns the entry repository.
func (s *NoOpTransactionScope) EntryRepo() ledger.EntryRepository {
	return s.entries
}

// WageRepo returns the wage line repository.
func (s *NoOpTransactionScope) WageRepo() ledger.WageRepository {
	return s.wages
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
