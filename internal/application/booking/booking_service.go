package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/booking"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BookingService handles catering bookings and their payments
type BookingService struct {
	scope    TransactionScope
	bookings booking.Repository
	entries  ledger.EntryRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService
func NewBookingService(scope TransactionScope, bookings booking.Repository, entries ledger.EntryRepository, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		scope:    scope,
		bookings: bookings,
		entries:  entries,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the time source used for default payment dates
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

// Create creates a pending booking
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	eventDate, err := shared.ParseDate(req.EventDate)
	if err != nil {
		return nil, err
	}
	b, err := booking.NewBooking(req.RequestorName, eventDate, req.ContractAmount)
	if err != nil {
		return nil, err
	}
	b.Address = req.Address
	b.ContactNumber = req.ContactNumber
	b.Email = req.Email
	b.EventTime = req.EventTime
	b.ItemsRequested = req.ItemsRequested

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("booking created", zap.String("booking_id", b.ID.String()))
	resp := ToBookingResponse(b)
	return &resp, nil
}

// Get returns a booking by id
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBookingResponse(b)
	return &resp, nil
}

// List returns bookings, optionally of one status
func (s *BookingService) List(ctx context.Context, filter BookingListFilter) ([]BookingResponse, error) {
	status := booking.Status(filter.Status)
	if status != "" && !status.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown booking status %q", filter.Status))
	}
	list, err := s.bookings.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]BookingResponse, len(list))
	for i := range list {
		out[i] = ToBookingResponse(&list[i])
	}
	return out, nil
}

// ChangeStatus applies an explicit Confirm or Cancel transition
func (s *BookingService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*BookingResponse, error) {
	var resp BookingResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BookingRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := b.Status
		if err := b.TransitionTo(booking.Status(req.Status)); err != nil {
			return err
		}
		if err := repos.BookingRepo().Save(ctx, b); err != nil {
			return err
		}
		s.logger.Info("booking status changed",
			zap.String("booking_id", id.String()),
			zap.String("from", from.String()),
			zap.String("to", b.Status.String()))
		resp = ToBookingResponse(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddPayment records a payment, computes the running balance and completes the
// booking when a full payment settles it. The booking row is locked for the
// duration of the transaction, so concurrent payments see each other.
func (s *BookingService) AddPayment(ctx context.Context, actor uuid.UUID, id uuid.UUID, req AddPaymentRequest) (*AddPaymentResponse, error) {
	kind, ok := ledger.ParsePaymentKind(req.PaymentType)
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown payment type %q", req.PaymentType))
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewValidationError("payment amount must be positive")
	}
	paidOn := shared.DayOf(s.now())
	if req.PaymentDate != "" {
		d, err := shared.ParseDate(req.PaymentDate)
		if err != nil {
			return nil, err
		}
		paidOn = d
	}

	var resp *AddPaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BookingRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !b.CanAcceptPayment() {
			return shared.NewDomainError(shared.CodeInvalidState,
				fmt.Sprintf("booking is %s and accepts no further payments", b.Status))
		}

		prior, err := repos.EntryRepo().FindByRef(ctx, id, ledger.CategoryBookingPayment)
		if err != nil {
			return err
		}
		result := ledger.ComputeRunningBalance(b.ContractAmount, amountsOf(prior), req.Amount, kind)

		payment, err := ledger.NewEntry(ledger.RefOwner(ledger.VentureCatering, id), ledger.CategoryBookingPayment, req.Amount, paidOn, string(kind))
		if err != nil {
			return err
		}
		payment.Reference = req.Reference
		payment.SetCreatedBy(actor)
		if err := repos.EntryRepo().SaveBatch(ctx, []*ledger.Entry{payment}); err != nil {
			return err
		}

		changed, err := b.ApplySettlement(result)
		if err != nil {
			return err
		}
		if changed {
			if err := repos.BookingRepo().Save(ctx, b); err != nil {
				return err
			}
		}

		resp = &AddPaymentResponse{
			Payment:              toPaymentResponse(id, payment),
			TotalPaid:            result.PaidAfter,
			RunningBalance:       result.Balance,
			BookingStatus:        b.Status.String(),
			BookingStatusUpdated: changed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking payment recorded",
		zap.String("booking_id", id.String()),
		zap.String("payment_type", string(kind)),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("running_balance", resp.RunningBalance.StringFixed(2)),
		zap.Bool("completed", resp.BookingStatusUpdated))
	return resp, nil
}

// ListPayments returns the payments of a booking, oldest first
func (s *BookingService) ListPayments(ctx context.Context, id uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.bookings.FindByID(ctx, id); err != nil {
		return nil, err
	}
	prior, err := s.entries.FindByRef(ctx, id, ledger.CategoryBookingPayment)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, len(prior))
	for i := range prior {
		out[i] = toPaymentResponse(id, &prior[i])
	}
	return out, nil
}

// PaymentsTotal returns the sum of a booking's payments and the outstanding balance
func (s *BookingService) PaymentsTotal(ctx context.Context, id uuid.UUID) (*PaymentsTotalResponse, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prior, err := s.entries.FindByRef(ctx, id, ledger.CategoryBookingPayment)
	if err != nil {
		return nil, err
	}
	total := ledger.SumAmounts(amountsOf(prior))
	return &PaymentsTotalResponse{
		BookingID:      id,
		ContractAmount: b.ContractAmount,
		TotalPaid:      total,
		Balance:        b.ContractAmount.Sub(total),
		Payments:       len(prior),
	}, nil
}

func amountsOf(entries []ledger.Entry) []decimal.Decimal {
	out := make([]decimal.Decimal, len(entries))
	for i := range entries {
		out[i] = entries[i].Amount
	}
	return out
}
