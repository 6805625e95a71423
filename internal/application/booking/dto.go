package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/booking"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
)

// CreateBookingRequest creates a catering booking
type CreateBookingRequest struct {
	RequestorName  string          `json:"requestor_name" binding:"required,max=200"`
	Address        string          `json:"address" binding:"max=300"`
	ContactNumber  string          `json:"contact_number" binding:"max=50"`
	Email          string          `json:"email" binding:"omitempty,email"`
	EventDate      string          `json:"event_date" binding:"required,isodate"`
	EventTime      string          `json:"event_time" binding:"max=20"`
	ItemsRequested string          `json:"items_requested" binding:"max=2000"`
	ContractAmount decimal.Decimal `json:"contract_amount"`
}

// AddPaymentRequest records a payment against a booking
type AddPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type" binding:"required,oneof='Down Payment' 'Partial Payment' 'Full Payment'"`
	// PaymentDate defaults to today
	PaymentDate string `json:"payment_date" binding:"omitempty,isodate"`
	Reference   string `json:"reference" binding:"max=100"`
}

// ChangeStatusRequest applies an explicit status transition
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Confirmed Cancelled"`
}

// BookingListFilter narrows the booking list
type BookingListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=Pending Confirmed Completed Cancelled"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID             uuid.UUID       `json:"id"`
	RequestorName  string          `json:"requestor_name"`
	Address        string          `json:"address,omitempty"`
	ContactNumber  string          `json:"contact_number,omitempty"`
	Email          string          `json:"email,omitempty"`
	EventDate      string          `json:"event_date"`
	EventTime      string          `json:"event_time,omitempty"`
	ItemsRequested string          `json:"items_requested,omitempty"`
	ContractAmount decimal.Decimal `json:"contract_amount"`
	Status         string          `json:"status"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PaymentResponse represents a recorded payment
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	BookingID   uuid.UUID       `json:"booking_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type"`
	PaymentDate string          `json:"payment_date"`
	Reference   string          `json:"reference,omitempty"`
}

// AddPaymentResponse is the result of recording a payment
type AddPaymentResponse struct {
	Payment              PaymentResponse `json:"payment"`
	TotalPaid            decimal.Decimal `json:"total_paid"`
	RunningBalance       decimal.Decimal `json:"running_balance"`
	BookingStatus        string          `json:"booking_status"`
	BookingStatusUpdated bool            `json:"booking_status_updated"`
}

// PaymentsTotalResponse is the sum of a booking's payments
type PaymentsTotalResponse struct {
	BookingID      uuid.UUID       `json:"booking_id"`
	ContractAmount decimal.Decimal `json:"contract_amount"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Balance        decimal.Decimal `json:"balance"`
	Payments       int             `json:"payments"`
}

// ToBookingResponse converts a domain booking to a response
func ToBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		RequestorName:  b.RequestorName,
		Address:        b.Address,
		ContactNumber:  b.ContactNumber,
		Email:          b.Email,
		EventDate:      b.EventDate.Format(shared.DateLayout),
		EventTime:      b.EventTime,
		ItemsRequested: b.ItemsRequested,
		ContractAmount: b.ContractAmount,
		Status:         b.Status.String(),
		Version:        b.Version,
		CreatedAt:      b.CreatedAt,
	}
}

func toPaymentResponse(bookingID uuid.UUID, e *ledger.Entry) PaymentResponse {
	return PaymentResponse{
		ID:          e.ID,
		BookingID:   bookingID,
		Amount:      e.Amount,
		PaymentType: e.Description,
		PaymentDate: e.Date.Format(shared.DateLayout),
		Reference:   e.Reference,
	}
}
