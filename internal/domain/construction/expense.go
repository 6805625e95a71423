package construction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
)

// ExpenseKind is one of the five invoice-numbered construction expense batches
type ExpenseKind string

const (
	KindMaterials   ExpenseKind = "materials"
	KindLabor       ExpenseKind = "labor"
	KindGasoline    ExpenseKind = "gasoline"
	KindDocuments   ExpenseKind = "documents"
	KindObligations ExpenseKind = "obligations"
)

// IsValid checks if the kind is known
func (k ExpenseKind) IsValid() bool {
	switch k {
	case KindMaterials, KindLabor, KindGasoline, KindDocuments, KindObligations:
		return true
	}
	return false
}

// Category returns the ledger category rows of this kind are booked under
func (k ExpenseKind) Category() ledger.Category {
	switch k {
	case KindMaterials:
		return ledger.CategoryMaterials
	case KindLabor:
		return ledger.CategoryLabor
	case KindGasoline:
		return ledger.CategoryGasoline
	case KindDocuments:
		return ledger.CategoryDocuments
	case KindObligations:
		return ledger.CategoryObligations
	default:
		return ""
	}
}

// hoursPerDay converts a daily rate into an hourly overtime rate
var hoursPerDay = decimal.NewFromInt(8)

// Line is a single row of an expense batch
type Line interface {
	entry(owner ledger.Owner, category ledger.Category, date time.Time) (*ledger.Entry, error)
}

// MaterialLine is a purchased material. Amount defaults to qty x unit price.
type MaterialLine struct {
	Item      string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

func (l MaterialLine) entry(owner ledger.Owner, category ledger.Category, date time.Time) (*ledger.Entry, error) {
	item := strings.TrimSpace(l.Item)
	if item == "" {
		return nil, shared.NewValidationError("material item is required")
	}
	if !l.Quantity.IsPositive() {
		return nil, shared.NewValidationError(fmt.Sprintf("quantity for %q must be positive", item))
	}
	amount := l.Amount
	if amount.IsZero() {
		amount = l.Quantity.Mul(l.UnitPrice).Round(2)
	}
	e, err := ledger.NewEntry(owner, category, amount, date, item)
	if err != nil {
		return nil, err
	}
	e.Detail = &ledger.LineDetail{
		Item:      item,
		Quantity:  l.Quantity,
		Unit:      strings.TrimSpace(l.Unit),
		UnitPrice: l.UnitPrice,
	}
	return e, nil
}

// LaborLine is a worker's pay on the project.
// Charge defaults to rate x days + (rate / 8) x overtime hours.
type LaborLine struct {
	EmployeeID    uuid.UUID
	EmployeeName  string
	RatePerDay    decimal.Decimal
	Days          decimal.Decimal
	OvertimeHours decimal.Decimal
	Charge        decimal.Decimal
}

// Overtime returns the overtime pay for the line
func (l LaborLine) Overtime() decimal.Decimal {
	if !l.OvertimeHours.IsPositive() {
		return decimal.Zero
	}
	return l.RatePerDay.Div(hoursPerDay).Mul(l.OvertimeHours).Round(2)
}

func (l LaborLine) entry(owner ledger.Owner, category ledger.Category, date time.Time) (*ledger.Entry, error) {
	if l.EmployeeID == uuid.Nil {
		return nil, shared.NewValidationError("labor line requires an employee")
	}
	if !l.Days.IsPositive() {
		return nil, shared.NewValidationError("labor days must be positive")
	}
	if l.RatePerDay.IsNegative() || l.OvertimeHours.IsNegative() {
		return nil, shared.NewValidationError("rate and overtime hours cannot be negative")
	}
	overtime := l.Overtime()
	charge := l.Charge
	if charge.IsZero() {
		charge = l.RatePerDay.Mul(l.Days).Add(overtime).Round(2)
	}
	e, err := ledger.NewEntry(owner, category, charge, date, l.EmployeeName)
	if err != nil {
		return nil, err
	}
	id := l.EmployeeID
	e.Detail = &ledger.LineDetail{
		EmployeeID:    &id,
		EmployeeName:  strings.TrimSpace(l.EmployeeName),
		RatePerDay:    l.RatePerDay,
		Days:          l.Days,
		OvertimeHours: l.OvertimeHours,
		Overtime:      overtime,
	}
	return e, nil
}

// AmountLine is a gasoline, document or obligation row
type AmountLine struct {
	Amount      decimal.Decimal
	Reference   string
	Description string
}

func (l AmountLine) entry(owner ledger.Owner, category ledger.Category, date time.Time) (*ledger.Entry, error) {
	if !l.Amount.IsPositive() {
		return nil, shared.NewValidationError(fmt.Sprintf("%s amount must be positive", category.DisplayName()))
	}
	e, err := ledger.NewEntry(owner, category, l.Amount, date, l.Description)
	if err != nil {
		return nil, err
	}
	e.Reference = strings.TrimSpace(l.Reference)
	return e, nil
}

// Batch is one save of an expense form. Every row shares one invoice number.
type Batch struct {
	Kind        ExpenseKind
	ProjectID   uuid.UUID
	ExpenseDate time.Time
	Lines       []Line
}

// Entries validates the whole batch and converts it to ledger entries.
// Any invalid line rejects the batch.
func (b Batch) Entries() ([]*ledger.Entry, error) {
	if !b.Kind.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown expense kind %q", b.Kind))
	}
	if b.ProjectID == uuid.Nil {
		return nil, shared.NewValidationError("project is required")
	}
	if b.ExpenseDate.IsZero() {
		return nil, shared.NewValidationError("expense date is required")
	}
	if len(b.Lines) == 0 {
		return nil, shared.NewValidationError("at least one line is required")
	}

	owner := ledger.RefOwner(ledger.VentureConstruction, b.ProjectID)
	entries := make([]*ledger.Entry, 0, len(b.Lines))
	for i, line := range b.Lines {
		e, err := line.entry(owner, b.Kind.Category(), b.ExpenseDate)
		if err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("line %d: %s", i+1, err.Error()))
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// KindOf returns the expense kind rows of category belong to
func KindOf(category ledger.Category) (ExpenseKind, bool) {
	for _, k := range Kinds() {
		if k.Category() == category {
			return k, true
		}
	}
	return "", false
}

// Revision is an edit of one recorded expense row. Nil fields keep the stored
// value. A zero Amount recomputes derived amounts from the revised inputs, or
// keeps the stored amount when no input changed.
type Revision struct {
	Date          time.Time
	Amount        decimal.Decimal
	Quantity      *decimal.Decimal
	UnitPrice     *decimal.Decimal
	RatePerDay    *decimal.Decimal
	Days          *decimal.Decimal
	OvertimeHours *decimal.Decimal
	Description   *string
	Reference     *string
}

// Revise applies r to a recorded expense row. The row keeps its project,
// expense type and invoice number; amount, date and line detail are rebuilt
// with the same rules a new batch line follows.
func Revise(e *ledger.Entry, r Revision) error {
	kind, ok := KindOf(e.Category)
	if !ok || e.Owner.Venture != ledger.VentureConstruction || e.Owner.RefID == nil {
		return shared.NewValidationError("not a construction expense row")
	}
	date := r.Date
	if date.IsZero() {
		date = e.Date
	}

	detail := ledger.LineDetail{}
	if e.Detail != nil {
		detail = *e.Detail
	}
	set := func(dst *decimal.Decimal, src *decimal.Decimal) bool {
		if src == nil {
			return false
		}
		*dst = *src
		return true
	}

	var line Line
	switch kind {
	case KindMaterials:
		l := MaterialLine{
			Item:      detail.Item,
			Quantity:  detail.Quantity,
			Unit:      detail.Unit,
			UnitPrice: detail.UnitPrice,
			Amount:    r.Amount,
		}
		if l.Item == "" {
			l.Item = e.Description
		}
		if r.Description != nil {
			l.Item = *r.Description
		}
		changed := set(&l.Quantity, r.Quantity)
		changed = set(&l.UnitPrice, r.UnitPrice) || changed
		if !changed && l.Amount.IsZero() {
			l.Amount = e.Amount
		}
		line = l
	case KindLabor:
		if detail.EmployeeID == nil {
			return shared.NewValidationError("labor row has no employee")
		}
		l := LaborLine{
			EmployeeID:    *detail.EmployeeID,
			EmployeeName:  detail.EmployeeName,
			RatePerDay:    detail.RatePerDay,
			Days:          detail.Days,
			OvertimeHours: detail.OvertimeHours,
			Charge:        r.Amount,
		}
		changed := set(&l.RatePerDay, r.RatePerDay)
		changed = set(&l.Days, r.Days) || changed
		changed = set(&l.OvertimeHours, r.OvertimeHours) || changed
		if !changed && l.Charge.IsZero() {
			l.Charge = e.Amount
		}
		line = l
	default:
		l := AmountLine{Amount: r.Amount, Reference: e.Reference, Description: e.Description}
		if l.Amount.IsZero() {
			l.Amount = e.Amount
		}
		if r.Reference != nil {
			l.Reference = *r.Reference
		}
		if r.Description != nil {
			l.Description = *r.Description
		}
		line = l
	}

	revised, err := line.entry(e.Owner, e.Category, date)
	if err != nil {
		return err
	}
	e.Amount = revised.Amount
	e.Date = revised.Date
	e.Description = revised.Description
	e.Reference = revised.Reference
	e.Detail = revised.Detail
	e.UpdatedAt = time.Now()
	return nil
}
