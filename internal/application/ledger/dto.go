package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
)

// BatchHeader is shared by every construction expense batch
type BatchHeader struct {
	ProjectID   uuid.UUID `json:"project_id" binding:"required"`
	ExpenseDate string    `json:"expense_date" binding:"required,isodate"`
	// InvoiceDate overrides the issue date used for the invoice number; defaults to today
	InvoiceDate string `json:"invoice_date" binding:"omitempty,isodate"`
}

// MaterialLineRequest is one purchased material
type MaterialLineRequest struct {
	Item      string          `json:"item" binding:"required,max=200"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit" binding:"max=50"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// RecordMaterialsRequest records a materials batch
type RecordMaterialsRequest struct {
	BatchHeader
	Lines []MaterialLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// LaborLineRequest is one worker's pay line
type LaborLineRequest struct {
	EmployeeID    uuid.UUID       `json:"employee_id" binding:"required"`
	EmployeeName  string          `json:"employee_name" binding:"max=200"`
	RatePerDay    decimal.Decimal `json:"rate_per_day"`
	Days          decimal.Decimal `json:"days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Charge        decimal.Decimal `json:"charge"`
}

// RecordLaborRequest records a labor batch
type RecordLaborRequest struct {
	BatchHeader
	Lines []LaborLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AmountLineRequest is a gasoline, document or obligation line
type AmountLineRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference" binding:"max=100"`
	Description string          `json:"description" binding:"max=500"`
}

// RecordAmountsRequest records a gasoline, documents or obligations batch
type RecordAmountsRequest struct {
	BatchHeader
	Lines []AmountLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// EntryLineRequest is one dated venture-level row (carenderia transaction, catering expense)
type EntryLineRequest struct {
	Date        string          `json:"date" binding:"required,isodate"`
	Category    string          `json:"category" binding:"required,category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=500"`
	Reference   string          `json:"reference" binding:"max=100"`
}

// RecordEntriesRequest records a batch of venture-level rows
type RecordEntriesRequest struct {
	Lines []EntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateEntryRequest edits a single row.
// Construction rows keep their expense type, so Category may be omitted; a
// zero Amount then recomputes the row from its revised line inputs.
type UpdateEntryRequest struct {
	Date     string          `json:"date" binding:"required,isodate"`
	Category string          `json:"category" binding:"omitempty,category"`
	Amount   decimal.Decimal `json:"amount"`

	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	RatePerDay    *decimal.Decimal `json:"rate_per_day,omitempty"`
	Days          *decimal.Decimal `json:"days,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	Description   *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	Reference     *string          `json:"reference,omitempty" binding:"omitempty,max=100"`
}

// revision converts the construction fields of the request
func (r UpdateEntryRequest) revision(date time.Time) construction.Revision {
	return construction.Revision{
		Date:          date,
		Amount:        r.Amount,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		RatePerDay:    r.RatePerDay,
		Days:          r.Days,
		OvertimeHours: r.OvertimeHours,
		Description:   r.Description,
		Reference:     r.Reference,
	}
}

// WageLineRequest is one employee's pay
type WageLineRequest struct {
	EmployeeID   uuid.UUID       `json:"employee_id" binding:"required"`
	EmployeeName string          `json:"employee_name" binding:"required,max=200"`
	Role         string          `json:"role" binding:"max=100"`
	RatePerDay   decimal.Decimal `json:"rate_per_day"`
	Days         decimal.Decimal `json:"days"`
	Amount       decimal.Decimal `json:"amount"`
}

// RecordWagesRequest records a day's wages for a venture
type RecordWagesRequest struct {
	Date  string            `json:"date" binding:"required,isodate"`
	Lines []WageLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CreateProjectRequest creates a construction project
type CreateProjectRequest struct {
	ContractorName  string          `json:"contractor_name" binding:"required,max=200"`
	ProjectName     string          `json:"project_name" binding:"required,max=200"`
	ProjectSite     string          `json:"project_site" binding:"max=300"`
	NoticeToProceed string          `json:"notice_to_proceed" binding:"omitempty,isodate"`
	DurationDays    int             `json:"duration_days" binding:"required,min=1"`
	ContractPrice   decimal.Decimal `json:"contract_price"`
}

// EntryResponse represents a ledger row in API responses
type EntryResponse struct {
	ID            uuid.UUID          `json:"id"`
	Venture       string             `json:"venture"`
	RefID         *uuid.UUID         `json:"ref_id,omitempty"`
	Category      string             `json:"category"`
	CategoryLabel string             `json:"category_label"`
	Amount        decimal.Decimal    `json:"amount"`
	Date          string             `json:"date"`
	InvoiceNumber string             `json:"invoice_number,omitempty"`
	Description   string             `json:"description,omitempty"`
	Reference     string             `json:"reference,omitempty"`
	Detail        *ledger.LineDetail `json:"detail,omitempty"`
	CreatedBy     *uuid.UUID         `json:"created_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// BatchResponse is the result of a batch save
type BatchResponse struct {
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
	Entries       []EntryResponse `json:"entries"`
}

// WageLineResponse represents a wage line in API responses
type WageLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Venture      string          `json:"venture"`
	Date         string          `json:"date"`
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Role         string          `json:"role,omitempty"`
	RatePerDay   decimal.Decimal `json:"rate_per_day"`
	Days         decimal.Decimal `json:"days"`
	Amount       decimal.Decimal `json:"amount"`
}

// WagesResponse is the result of a wages save
type WagesResponse struct {
	Count int                `json:"count"`
	Total decimal.Decimal    `json:"total"`
	Lines []WageLineResponse `json:"lines"`
	// LedgerEntry is the aggregated Wages row, for ventures that book wages in the ledger
	LedgerEntry *EntryResponse `json:"ledger_entry,omitempty"`
}

// InvoiceNumberResponse carries a previewed invoice number. Another save may
// take it first.
type InvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
	Date          string `json:"date"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID              uuid.UUID       `json:"id"`
	ContractorName  string          `json:"contractor_name"`
	ProjectName     string          `json:"project_name"`
	ProjectSite     string          `json:"project_site,omitempty"`
	NoticeToProceed string          `json:"notice_to_proceed,omitempty"`
	CompletionDate  string          `json:"completion_date,omitempty"`
	DurationDays    int             `json:"duration_days"`
	ContractPrice   decimal.Decimal `json:"contract_price"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToEntryResponse converts a domain entry to a response
func ToEntryResponse(e *ledger.Entry) EntryResponse {
	resp := EntryResponse{
		ID:            e.ID,
		Venture:       e.Owner.Venture.String(),
		RefID:         e.Owner.RefID,
		Category:      e.Category.String(),
		CategoryLabel: e.Category.DisplayName(),
		Amount:        e.Amount,
		Date:          e.Date.Format(shared.DateLayout),
		Description:   e.Description,
		Reference:     e.Reference,
		Detail:        e.Detail,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
	}
	if e.InvoiceNumber != nil {
		resp.InvoiceNumber = e.InvoiceNumber.String()
	}
	return resp
}

// ToEntryResponses converts a slice of entries
func ToEntryResponses(entries []*ledger.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return out
}

func toBatchResponse(n *ledger.InvoiceNumber, entries []*ledger.Entry) *BatchResponse {
	resp := &BatchResponse{
		Count:   len(entries),
		Total:   decimal.Zero,
		Entries: ToEntryResponses(entries),
	}
	if n != nil {
		resp.InvoiceNumber = n.String()
	}
	for _, e := range entries {
		resp.Total = resp.Total.Add(e.Amount)
	}
	return resp
}

func toWageLineResponse(l *ledger.WageLine) WageLineResponse {
	return WageLineResponse{
		ID:           l.ID,
		Venture:      l.Venture.String(),
		Date:         l.Date.Format(shared.DateLayout),
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		Role:         l.Role,
		RatePerDay:   l.RatePerDay,
		Days:         l.Days,
		Amount:       l.Amount,
	}
}

// ToProjectResponse converts a domain project to a response
func ToProjectResponse(p *construction.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:             p.ID,
		ContractorName: p.ContractorName,
		ProjectName:    p.ProjectName,
		ProjectSite:    p.ProjectSite,
		DurationDays:   p.DurationDays,
		ContractPrice:  p.ContractPrice,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
	}
	if p.NoticeToProceed != nil {
		resp.NoticeToProceed = p.NoticeToProceed.Format(shared.DateLayout)
	}
	if p.CompletionDate != nil {
		resp.CompletionDate = p.CompletionDate.Format(shared.DateLayout)
	}
	return resp
}

// ActivityLineRequest is one site log line. A blank activity is skipped; a
// blank date takes the batch date.
type ActivityLineRequest struct {
	Activity     string `json:"activity" binding:"max=255"`
	ActivityDate string `json:"activity_date"`
	Status       string `json:"activity_status" binding:"max=30"`
}

// RecordActivitiesRequest records a batch of site log lines for a project
type RecordActivitiesRequest struct {
	ExpenseDate string                `json:"expense_date" binding:"required,isodate"`
	Lines       []ActivityLineRequest `json:"activity_entries" binding:"required,min=1,dive"`
}

// UpdateActivityRequest replaces an activity's text, time and status
type UpdateActivityRequest struct {
	Activity     string `json:"activity" binding:"required,max=255"`
	ActivityDate string `json:"activity_date" binding:"required"`
	Status       string `json:"activity_status" binding:"max=30"`
}

// ActivityResponse represents a project activity in API responses
type ActivityResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProjectID    uuid.UUID  `json:"project_id"`
	Activity     string     `json:"activity"`
	ActivityDate string     `json:"activity_date"`
	ActivityTime string     `json:"activity_time"`
	Status       string     `json:"activity_status"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToActivityResponse converts a domain activity to a response
func ToActivityResponse(a *construction.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		Activity:     a.Description,
		ActivityDate: a.At.Format(shared.DateLayout),
		ActivityTime: a.At.Format("15:04"),
		Status:       a.Status,
		CreatedBy:    a.CreatedBy,
		CreatedAt:    a.CreatedAt,
	}
}
