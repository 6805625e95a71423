package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
)

// Status represents the lifecycle state of a catering booking
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanConfirm returns true if the booking can be confirmed
func (s Status) CanConfirm() bool {
	return s == StatusPending
}

// CanCancel returns true if the booking can be cancelled
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanComplete returns true if a settling payment may complete the booking
func (s Status) CanComplete() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking is a catering event booking aggregate root
type Booking struct {
	shared.BaseAggregateRoot
	RequestorName  string
	Address        string
	ContactNumber  string
	Email          string
	EventDate      time.Time
	EventTime      string
	ItemsRequested string
	ContractAmount decimal.Decimal
	Status         Status
}

// NewBooking creates a pending booking
func NewBooking(requestor string, eventDate time.Time, contract decimal.Decimal) (*Booking, error) {
	requestor = strings.TrimSpace(requestor)
	if requestor == "" {
		return nil, shared.NewValidationError("requestor name is required")
	}
	if eventDate.IsZero() {
		return nil, shared.NewValidationError("event date is required")
	}
	if contract.IsNegative() {
		return nil, shared.NewValidationError("contract amount cannot be negative")
	}
	return &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequestorName:     requestor,
		EventDate:         shared.DayOf(eventDate),
		ContractAmount:    contract,
		Status:            StatusPending,
	}, nil
}

// Confirm moves a pending booking to Confirmed
func (b *Booking) Confirm() error {
	if !b.Status.CanConfirm() {
		return b.transitionError(StatusConfirmed)
	}
	b.Status = StatusConfirmed
	b.IncrementVersion()
	return nil
}

// Cancel moves a pending or confirmed booking to Cancelled
func (b *Booking) Cancel() error {
	if !b.Status.CanCancel() {
		return b.transitionError(StatusCancelled)
	}
	b.Status = StatusCancelled
	b.IncrementVersion()
	return nil
}

// Complete moves the booking to Completed; only payment settlement calls it
func (b *Booking) Complete() error {
	if !b.Status.CanComplete() {
		return b.transitionError(StatusCompleted)
	}
	b.Status = StatusCompleted
	b.IncrementVersion()
	return nil
}

// TransitionTo applies an explicit user transition
func (b *Booking) TransitionTo(target Status) error {
	switch target {
	case StatusConfirmed:
		return b.Confirm()
	case StatusCancelled:
		return b.Cancel()
	case StatusCompleted:
		return shared.NewDomainError(shared.CodeInvalidState, "bookings are completed by a settling full payment")
	default:
		return shared.NewValidationError(fmt.Sprintf("unknown booking status %q", target))
	}
}

// ApplySettlement completes the booking when the balance result says so.
// It reports whether the status changed.
func (b *Booking) ApplySettlement(result ledger.BalanceResult) (bool, error) {
	if !result.Completes {
		return false, nil
	}
	if err := b.Complete(); err != nil {
		return false, err
	}
	return true, nil
}

// CanAcceptPayment reports whether payments may still be recorded
func (b *Booking) CanAcceptPayment() bool {
	return !b.Status.IsTerminal()
}

func (b *Booking) transitionError(target Status) error {
	return shared.NewDomainError(shared.CodeInvalidState,
		fmt.Sprintf("cannot move booking from %s to %s", b.Status, target))
}

// Repository defines the interface for booking persistence
type Repository interface {
	// FindByID finds a booking by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByIDForUpdate finds a booking and locks its row for the enclosing transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByStatus lists bookings in a status ordered by event date; an empty status lists all
	FindByStatus(ctx context.Context, status Status) ([]Booking, error)

	// Save creates or updates a booking, checking the version on update
	Save(ctx context.Context, b *Booking) error
}
