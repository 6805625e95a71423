package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/shared"
)

// Owner identifies the project, booking or venture a row belongs to
type Owner struct {
	Venture Venture
	// RefID is the project or booking id; nil for venture-level rows
	RefID *uuid.UUID
}

// VentureOwner returns an owner with no specific project or booking
func VentureOwner(v Venture) Owner {
	return Owner{Venture: v}
}

// RefOwner returns an owner pointing at a project or booking
func RefOwner(v Venture, id uuid.UUID) Owner {
	return Owner{Venture: v, RefID: &id}
}

// Entry is a dated, categorized monetary row.
// It covers construction expense lines, carenderia transactions,
// catering expenses and booking payments alike.
type Entry struct {
	shared.BaseEntity
	Owner         Owner
	Category      Category
	Amount        decimal.Decimal
	Date          time.Time
	InvoiceNumber *InvoiceNumber
	Description   string
	Reference     string
	// Detail holds category specific line data (qty, rate, days ...)
	Detail    *LineDetail
	CreatedBy *uuid.UUID
}

// LineDetail carries the inputs a derived amount was computed from
type LineDetail struct {
	Item          string          `json:"item,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	EmployeeID    *uuid.UUID      `json:"employee_id,omitempty"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	RatePerDay    decimal.Decimal `json:"rate_per_day"`
	Days          decimal.Decimal `json:"days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Overtime      decimal.Decimal `json:"overtime"`
}

// NewEntry creates a validated entry
func NewEntry(owner Owner, category Category, amount decimal.Decimal, date time.Time, description string) (*Entry, error) {
	if !owner.Venture.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown venture %q", owner.Venture))
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown category %q", category))
	}
	if date.IsZero() {
		return nil, shared.NewValidationError("date is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("amount cannot be negative")
	}
	description = strings.TrimSpace(description)
	if len(description) > 500 {
		return nil, shared.NewValidationError("description cannot exceed 500 characters")
	}

	return &Entry{
		BaseEntity:  shared.NewBaseEntity(),
		Owner:       owner,
		Category:    category,
		Amount:      amount,
		Date:        shared.DayOf(date),
		Description: description,
	}, nil
}

// StampInvoice assigns the batch invoice number
func (e *Entry) StampInvoice(n InvoiceNumber) {
	e.InvoiceNumber = &n
}

// SetCreatedBy records the user that created the entry
func (e *Entry) SetCreatedBy(userID uuid.UUID) {
	if userID != uuid.Nil {
		e.CreatedBy = &userID
	}
}

// Update changes the editable fields of an entry
func (e *Entry) Update(category Category, amount decimal.Decimal, date time.Time) error {
	if !category.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("unknown category %q", category))
	}
	if date.IsZero() {
		return shared.NewValidationError("date is required")
	}
	if amount.IsNegative() {
		return shared.NewValidationError("amount cannot be negative")
	}
	e.Category = category
	e.Amount = amount
	e.Date = shared.DayOf(date)
	e.UpdatedAt = time.Now()
	return nil
}

// SumAmounts adds amounts exactly
func SumAmounts(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
