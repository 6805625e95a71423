package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/shared"
)

// DailyRollup holds per-category sums for one calendar day
type DailyRollup struct {
	Date            time.Time
	Categories      map[Category]decimal.Decimal
	TotalIncome     decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
	EntryCount      int
}

// Amount returns the sum for a category, zero when absent
func (d *DailyRollup) Amount(c Category) decimal.Decimal {
	if v, ok := d.Categories[c]; ok {
		return v
	}
	return decimal.Zero
}

// MonthlyRollup holds the daily rollups of one month and the month totals
type MonthlyRollup struct {
	Year            int
	Month           time.Month
	Days            []*DailyRollup // ascending by date
	Columns         []Category     // categories seen, report column order
	Totals          map[Category]decimal.Decimal
	TotalIncome     decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

// Amount returns the month total for a category, zero when absent
func (m *MonthlyRollup) Amount(c Category) decimal.Decimal {
	if v, ok := m.Totals[c]; ok {
		return v
	}
	return decimal.Zero
}

// IsEmpty reports whether no rows fell into the month
func (m *MonthlyRollup) IsEmpty() bool {
	return len(m.Days) == 0
}

// Ascending returns the days oldest first
func (m *MonthlyRollup) Ascending() []*DailyRollup {
	return slices.Clone(m.Days)
}

// Descending returns the days newest first
func (m *MonthlyRollup) Descending() []*DailyRollup {
	days := slices.Clone(m.Days)
	slices.Reverse(days)
	return days
}

// AggregateByDay groups rows by date and sums amounts per category.
// Every category present anywhere in rows appears on every day, zero when the
// day had no such row. A row with a zero date or unknown category rejects the
// whole batch with an AGGREGATION_INPUT_ERROR.
func AggregateByDay(rows []Entry) (map[time.Time]*DailyRollup, error) {
	seen := make(map[Category]struct{})
	for i := range rows {
		if err := checkRow(i, &rows[i]); err != nil {
			return nil, err
		}
		seen[rows[i].Category] = struct{}{}
	}

	days := make(map[time.Time]*DailyRollup)
	for i := range rows {
		row := &rows[i]
		key := shared.DayOf(row.Date)
		day, ok := days[key]
		if !ok {
			day = newDailyRollup(key, seen)
			days[key] = day
		}
		day.Categories[row.Category] = day.Categories[row.Category].Add(row.Amount)
		day.EntryCount++
	}

	for _, day := range days {
		for c, amount := range day.Categories {
			if c.IsIncome() {
				day.TotalIncome = day.TotalIncome.Add(amount)
			} else {
				day.TotalDeductions = day.TotalDeductions.Add(amount)
			}
		}
		day.Net = day.TotalIncome.Sub(day.TotalDeductions)
	}
	return days, nil
}

// AggregateByMonth keeps the rows of year/month, aggregates them by day and
// sums month-level totals. A month without rows yields an empty rollup.
// It does not judge whether the month is a sensible request; callers do.
func AggregateByMonth(rows []Entry, year int, month time.Month) (*MonthlyRollup, error) {
	inMonth := make([]Entry, 0, len(rows))
	for i := range rows {
		if err := checkRow(i, &rows[i]); err != nil {
			return nil, err
		}
		if shared.SameMonth(rows[i].Date, year, month) {
			inMonth = append(inMonth, rows[i])
		}
	}

	byDay, err := AggregateByDay(inMonth)
	if err != nil {
		return nil, err
	}

	rollup := &MonthlyRollup{
		Year:            year,
		Month:           month,
		Days:            make([]*DailyRollup, 0, len(byDay)),
		Columns:         []Category{},
		Totals:          make(map[Category]decimal.Decimal),
		TotalIncome:     decimal.Zero,
		TotalDeductions: decimal.Zero,
		Net:             decimal.Zero,
	}
	for _, day := range byDay {
		rollup.Days = append(rollup.Days, day)
		for c, amount := range day.Categories {
			total, ok := rollup.Totals[c]
			if !ok {
				total = decimal.Zero
				rollup.Columns = append(rollup.Columns, c)
			}
			rollup.Totals[c] = total.Add(amount)
		}
		rollup.TotalIncome = rollup.TotalIncome.Add(day.TotalIncome)
		rollup.TotalDeductions = rollup.TotalDeductions.Add(day.TotalDeductions)
	}
	rollup.Net = rollup.TotalIncome.Sub(rollup.TotalDeductions)

	slices.SortFunc(rollup.Days, func(a, b *DailyRollup) int {
		return a.Date.Compare(b.Date)
	})
	SortCategories(rollup.Columns)
	return rollup, nil
}

// SumByCategory sums amounts per category over rows of any dates. Rows are
// checked the same way AggregateByDay checks them.
func SumByCategory(rows []Entry) (map[Category]decimal.Decimal, error) {
	totals := make(map[Category]decimal.Decimal)
	for i := range rows {
		if err := checkRow(i, &rows[i]); err != nil {
			return nil, err
		}
		totals[rows[i].Category] = totals[rows[i].Category].Add(rows[i].Amount)
	}
	return totals, nil
}

func newDailyRollup(date time.Time, categories map[Category]struct{}) *DailyRollup {
	day := &DailyRollup{
		Date:            date,
		Categories:      make(map[Category]decimal.Decimal, len(categories)),
		TotalIncome:     decimal.Zero,
		TotalDeductions: decimal.Zero,
		Net:             decimal.Zero,
	}
	for c := range categories {
		day.Categories[c] = decimal.Zero
	}
	return day
}

func checkRow(i int, row *Entry) error {
	if row.Date.IsZero() {
		return shared.NewAggregationInputError(fmt.Sprintf("row %d has no date", i))
	}
	if !row.Category.IsValid() {
		return shared.NewAggregationInputError(fmt.Sprintf("row %d has unknown category %q", i, row.Category))
	}
	return nil
}
