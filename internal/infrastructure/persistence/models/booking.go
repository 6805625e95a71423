package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/booking"
	"github.com/smbc/backend/internal/domain/shared"
)

// BookingModel is the persistence model for the Booking aggregate root.
type BookingModel struct {
	AggregateModel
	RequestorName  string          `gorm:"type:varchar(200);not null"`
	Address        string          `gorm:"type:varchar(500)"`
	ContactNumber  string          `gorm:"type:varchar(50)"`
	Email          string          `gorm:"type:varchar(200)"`
	EventDate      time.Time       `gorm:"type:date;not null;index"`
	EventTime      string          `gorm:"type:varchar(20)"`
	ItemsRequested string          `gorm:"type:text"`
	ContractAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status         booking.Status  `gorm:"type:varchar(20);not null;default:'Pending';index"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking
func (m *BookingModel) ToDomain() *booking.Booking {
	return &booking.Booking{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RequestorName:     m.RequestorName,
		Address:           m.Address,
		ContactNumber:     m.ContactNumber,
		Email:             m.Email,
		EventDate:         shared.DayOf(m.EventDate),
		EventTime:         m.EventTime,
		ItemsRequested:    m.ItemsRequested,
		ContractAmount:    m.ContractAmount,
		Status:            m.Status,
	}
}

// BookingModelFromDomain creates a new persistence model from a domain Booking
func BookingModelFromDomain(b *booking.Booking) *BookingModel {
	m := &BookingModel{
		RequestorName:  b.RequestorName,
		Address:        b.Address,
		ContactNumber:  b.ContactNumber,
		Email:          b.Email,
		EventDate:      shared.DayOf(b.EventDate),
		EventTime:      b.EventTime,
		ItemsRequested: b.ItemsRequested,
		ContractAmount: b.ContractAmount,
		Status:         b.Status,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}
