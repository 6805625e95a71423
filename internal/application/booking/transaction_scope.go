package booking

import (
	"context"

	"github.com/smbc/backend/internal/domain/booking"
	"github.com/smbc/backend/internal/domain/ledger"
)

// TransactionScope runs booking and payment writes in one database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to the current transaction
type TransactionalRepositories interface {
	BookingRepo() booking.Repository
	EntryRepo() ledger.EntryRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
type NoOpTransactionScope struct {
	bookings booking.Repository
	entries  ledger.EntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(bookings booking.Repository, entries ledger.EntryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{bookings: bookings, entries: entries}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BookingRepo returns the booking repository.
func (s *NoOpTransactionScope) BookingRepo() booking.Repository {
	return s.bookings
}

// EntryRepo returns the entry repository.
func (s *NoOpTransactionScope) EntryRepo() ledger.EntryRepository {
	return s.entries
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
