package ledger

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/shared"
)

// WageLine is one employee's pay for a day of work
type WageLine struct {
	shared.BaseEntity
	Venture      Venture
	Date         time.Time
	EmployeeID   uuid.UUID
	EmployeeName string
	Role         string
	RatePerDay   decimal.Decimal
	Days         decimal.Decimal
	Amount       decimal.Decimal
	Description  string
	CreatedBy    *uuid.UUID
}

// NewWageLine creates a wage line. A zero amount is derived as rate x days.
func NewWageLine(venture Venture, date time.Time, employeeID uuid.UUID, employeeName string, rate, days, amount decimal.Decimal) (*WageLine, error) {
	if !venture.IsValid() {
		return nil, shared.NewValidationError("unknown venture")
	}
	if date.IsZero() {
		return nil, shared.NewValidationError("date is required")
	}
	if employeeID == uuid.Nil || strings.TrimSpace(employeeName) == "" {
		return nil, shared.NewValidationError("employee is required for each wage line")
	}
	if rate.IsNegative() || days.IsNegative() || amount.IsNegative() {
		return nil, shared.NewValidationError("rate, days and amount cannot be negative")
	}
	if amount.IsZero() {
		amount = rate.Mul(days)
	}
	if amount.IsZero() {
		return nil, shared.NewValidationError("wage amount must be positive")
	}

	return &WageLine{
		BaseEntity:   shared.NewBaseEntity(),
		Venture:      venture,
		Date:         shared.DayOf(date),
		EmployeeID:   employeeID,
		EmployeeName: strings.TrimSpace(employeeName),
		RatePerDay:   rate,
		Days:         days,
		Amount:       amount,
		Description:  "Wages",
	}, nil
}

// WageDay groups the wage lines of one day
type WageDay struct {
	Date  time.Time
	Lines []WageLine
	Total decimal.Decimal
}

// WageMonth is the wages report for a month, newest day first
type WageMonth struct {
	Year  int
	Month time.Month
	Days  []WageDay
	Total decimal.Decimal
}

// GroupWagesByMonth keeps lines of year/month and groups them by day, newest first
func GroupWagesByMonth(lines []WageLine, year int, month time.Month) *WageMonth {
	byDay := make(map[time.Time]*WageDay)
	for _, line := range lines {
		if !shared.SameMonth(line.Date, year, month) {
			continue
		}
		key := shared.DayOf(line.Date)
		day, ok := byDay[key]
		if !ok {
			day = &WageDay{Date: key, Total: decimal.Zero}
			byDay[key] = day
		}
		day.Lines = append(day.Lines, line)
		day.Total = day.Total.Add(line.Amount)
	}

	report := &WageMonth{Year: year, Month: month, Days: make([]WageDay, 0, len(byDay)), Total: decimal.Zero}
	for _, day := range byDay {
		report.Days = append(report.Days, *day)
		report.Total = report.Total.Add(day.Total)
	}
	slices.SortFunc(report.Days, func(a, b WageDay) int {
		return b.Date.Compare(a.Date)
	})
	return report
}
