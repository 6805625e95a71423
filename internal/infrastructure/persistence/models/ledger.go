package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
)

// InvoiceCounterModel is the per-day invoice counter row
type InvoiceCounterModel struct {
	InvoiceDate time.Time `gorm:"type:date;primaryKey"`
	LastSeq     int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceCounterModel) TableName() string {
	return "invoice_counters"
}

// ToDomain converts the model to a domain InvoiceCounter
func (m *InvoiceCounterModel) ToDomain() ledger.InvoiceCounter {
	return ledger.InvoiceCounter{
		InvoiceDate: shared.DayOf(m.InvoiceDate),
		LastSeq:     m.LastSeq,
	}
}

// EntryModel is the persistence model for ledger entries
type EntryModel struct {
	BaseModel
	Venture       ledger.Venture     `gorm:"type:varchar(20);not null;index:idx_ledger_entries_venture_date,priority:1"`
	RefID         *uuid.UUID         `gorm:"type:uuid;index"`
	Category      ledger.Category    `gorm:"type:varchar(30);not null;index"`
	Amount        decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	EntryDate     time.Time          `gorm:"type:date;not null;index:idx_ledger_entries_venture_date,priority:2"`
	InvoiceNumber *string            `gorm:"type:varchar(32);index"`
	Description   string             `gorm:"type:varchar(500)"`
	Reference     string             `gorm:"type:varchar(100)"`
	Detail        *ledger.LineDetail `gorm:"serializer:json;type:jsonb"`
	CreatedBy     *uuid.UUID         `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (EntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain Entry
func (m *EntryModel) ToDomain() *ledger.Entry {
	e := &ledger.Entry{
		BaseEntity:  m.BaseModel.ToDomain(),
		Owner:       ledger.Owner{Venture: m.Venture, RefID: m.RefID},
		Category:    m.Category,
		Amount:      m.Amount,
		Date:        shared.DayOf(m.EntryDate),
		Description: m.Description,
		Reference:   m.Reference,
		Detail:      m.Detail,
		CreatedBy:   m.CreatedBy,
	}
	if m.InvoiceNumber != nil {
		n := ledger.InvoiceNumber(*m.InvoiceNumber)
		e.InvoiceNumber = &n
	}
	return e
}

// FromDomain populates the persistence model from a domain Entry
func (m *EntryModel) FromDomain(e *ledger.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Venture = e.Owner.Venture
	m.RefID = e.Owner.RefID
	m.Category = e.Category
	m.Amount = e.Amount
	m.EntryDate = shared.DayOf(e.Date)
	m.Description = e.Description
	m.Reference = e.Reference
	m.Detail = e.Detail
	m.CreatedBy = e.CreatedBy
	m.InvoiceNumber = nil
	if e.InvoiceNumber != nil {
		s := e.InvoiceNumber.String()
		m.InvoiceNumber = &s
	}
}

// EntryModelFromDomain creates a new persistence model from a domain Entry
func EntryModelFromDomain(e *ledger.Entry) *EntryModel {
	m := &EntryModel{}
	m.FromDomain(e)
	return m
}

// WageLineModel is the persistence model for wage lines
type WageLineModel struct {
	BaseModel
	Venture      ledger.Venture  `gorm:"type:varchar(20);not null;index:idx_wage_lines_venture_date,priority:1"`
	WorkDate     time.Time       `gorm:"type:date;not null;index:idx_wage_lines_venture_date,priority:2"`
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeName string          `gorm:"type:varchar(200);not null"`
	Role         string          `gorm:"type:varchar(100)"`
	RatePerDay   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Days         decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description  string          `gorm:"type:varchar(500)"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (WageLineModel) TableName() string {
	return "wage_lines"
}

// ToDomain converts the persistence model to a domain WageLine
func (m *WageLineModel) ToDomain() *ledger.WageLine {
	return &ledger.WageLine{
		BaseEntity:   m.BaseModel.ToDomain(),
		Venture:      m.Venture,
		Date:         shared.DayOf(m.WorkDate),
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		Role:         m.Role,
		RatePerDay:   m.RatePerDay,
		Days:         m.Days,
		Amount:       m.Amount,
		Description:  m.Description,
		CreatedBy:    m.CreatedBy,
	}
}

// WageLineModelFromDomain creates a new persistence model from a domain WageLine
func WageLineModelFromDomain(l *ledger.WageLine) *WageLineModel {
	m := &WageLineModel{
		Venture:      l.Venture,
		WorkDate:     shared.DayOf(l.Date),
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		Role:         l.Role,
		RatePerDay:   l.RatePerDay,
		Days:         l.Days,
		Amount:       l.Amount,
		Description:  l.Description,
		CreatedBy:    l.CreatedBy,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}
