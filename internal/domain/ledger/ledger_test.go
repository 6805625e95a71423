package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amounts(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func TestComputeRunningBalance(t *testing.T) {
	t.Run("full payment settling the contract completes", func(t *testing.T) {
		res := ComputeRunningBalance(decimal.NewFromInt(5000), amounts("2000", "2000"), decimal.NewFromInt(1000), PaymentKindFull)

		assert.True(t, res.Balance.IsZero())
		assert.True(t, res.PaidBefore.Equal(decimal.NewFromInt(4000)))
		assert.True(t, res.PaidAfter.Equal(decimal.NewFromInt(5000)))
		assert.True(t, res.Completes)
	})

	t.Run("partial payment never completes", func(t *testing.T) {
		res := ComputeRunningBalance(decimal.NewFromInt(5000), amounts("2000", "2000"), decimal.NewFromInt(1000), PaymentKindPartial)

		assert.True(t, res.Balance.IsZero())
		assert.False(t, res.Completes)
	})

	t.Run("full payment within tolerance completes", func(t *testing.T) {
		res := ComputeRunningBalance(decimal.RequireFromString("5000.00"), amounts("2499.995"), decimal.RequireFromString("2499.995"), PaymentKindFull)
		assert.True(t, res.Completes)

		res = ComputeRunningBalance(decimal.RequireFromString("5000.00"), nil, decimal.RequireFromString("4999.99"), PaymentKindFull)
		assert.True(t, res.Balance.Equal(decimal.RequireFromString("0.01")))
		assert.True(t, res.Completes)

		res = ComputeRunningBalance(decimal.RequireFromString("5000.00"), nil, decimal.RequireFromString("5000.01"), PaymentKindFull)
		assert.True(t, res.Balance.Equal(decimal.RequireFromString("-0.01")))
		assert.True(t, res.Completes)
	})

	t.Run("full payment leaving a real balance does not complete", func(t *testing.T) {
		res := ComputeRunningBalance(decimal.NewFromInt(5000), amounts("2000"), decimal.NewFromInt(1000), PaymentKindFull)

		assert.True(t, res.Balance.Equal(decimal.NewFromInt(2000)))
		assert.False(t, res.Completes)

		res = ComputeRunningBalance(decimal.RequireFromString("5000"), nil, decimal.RequireFromString("4999.98"), PaymentKindFull)
		assert.False(t, res.Completes)
	})

	t.Run("no prior payments", func(t *testing.T) {
		res := ComputeRunningBalance(decimal.NewFromInt(100), nil, decimal.NewFromInt(40), PaymentKindDownPayment)
		assert.True(t, res.PaidBefore.IsZero())
		assert.True(t, res.Balance.Equal(decimal.NewFromInt(60)))
	})
}

func TestParsePaymentKind(t *testing.T) {
	k, ok := ParsePaymentKind(" full payment ")
	require.True(t, ok)
	assert.Equal(t, PaymentKindFull, k)

	_, ok = ParsePaymentKind("Final Payment")
	assert.False(t, ok)
}

func TestCategory(t *testing.T) {
	t.Run("bucket table", func(t *testing.T) {
		assert.Equal(t, BucketIncome, CategoryDailySales.Bucket())
		assert.Equal(t, BucketIncome, CategoryBookingPayment.Bucket())
		for _, c := range []Category{
			CategoryWages, CategoryElectricBill, CategoryWaterBill, CategoryMaintenance,
			CategoryMayorsPermit, CategoryRental, CategoryBIR, CategorySSS,
			CategoryPagIbig, CategoryPurchases,
		} {
			assert.True(t, c.IsDeduction(), c)
		}
	})

	t.Run("parse accepts enum values and labels", func(t *testing.T) {
		tests := map[string]Category{
			"DAILY_SALES":    CategoryDailySales,
			"daily_sales":    CategoryDailySales,
			"Daily Sales":    CategoryDailySales,
			"Mayor's Permit": CategoryMayorsPermit,
			"PAG-IBIG":       CategoryPagIbig,
			" Electric Bill": CategoryElectricBill,
		}
		for in, want := range tests {
			got, ok := ParseCategory(in)
			assert.True(t, ok, in)
			assert.Equal(t, want, got, in)
		}

		_, ok := ParseCategory("Mayors Permit")
		assert.False(t, ok)
	})

	t.Run("unknown category is invalid", func(t *testing.T) {
		assert.False(t, Category("TIPS").IsValid())
		assert.Equal(t, "TIPS", Category("TIPS").DisplayName())
	})
}

func TestInvoiceNumber(t *testing.T) {
	t.Run("formats with four digit padding", func(t *testing.T) {
		assert.Equal(t, InvoiceNumber("INV-20260206-0007"), FormatInvoiceNumber(day("2026-02-06"), 7))
		assert.Equal(t, InvoiceNumber("INV-20260206-12345"), FormatInvoiceNumber(day("2026-02-06"), 12345))
	})

	t.Run("parses back", func(t *testing.T) {
		d, seq, err := InvoiceNumber("INV-20260206-0007").Parse()
		require.NoError(t, err)
		assert.Equal(t, day("2026-02-06"), d)
		assert.Equal(t, int64(7), seq)
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		for _, n := range []InvoiceNumber{"", "INV-2026-0001", "PUR-20260206-0001", "INV-20260206-7", "INV-20260206-0000"} {
			_, _, err := n.Parse()
			assert.ErrorIs(t, err, shared.ErrValidation, n)
		}
	})
}

func TestNewEntry(t *testing.T) {
	t.Run("normalizes the date", func(t *testing.T) {
		at := time.Date(2026, 2, 1, 15, 30, 0, 0, time.UTC)
		e, err := NewEntry(VentureOwner(VentureCarenderia), CategoryDailySales, decimal.NewFromInt(10), at, " lunch ")
		require.NoError(t, err)
		assert.Equal(t, day("2026-02-01"), e.Date)
		assert.Equal(t, "lunch", e.Description)
		assert.NotEqual(t, uuid.Nil, e.ID)
	})

	t.Run("validates", func(t *testing.T) {
		owner := VentureOwner(VentureCatering)
		_, err := NewEntry(owner, Category("X"), decimal.NewFromInt(1), day("2026-02-01"), "")
		assert.ErrorIs(t, err, shared.ErrValidation)

		_, err = NewEntry(owner, CategoryWages, decimal.NewFromInt(-1), day("2026-02-01"), "")
		assert.ErrorIs(t, err, shared.ErrValidation)

		_, err = NewEntry(owner, CategoryWages, decimal.NewFromInt(1), time.Time{}, "")
		assert.ErrorIs(t, err, shared.ErrValidation)

		_, err = NewEntry(Owner{Venture: "bakery"}, CategoryWages, decimal.NewFromInt(1), day("2026-02-01"), "")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("stamp invoice and creator", func(t *testing.T) {
		e, err := NewEntry(VentureOwner(VentureConstruction), CategoryMaterials, decimal.NewFromInt(1), day("2026-02-01"), "")
		require.NoError(t, err)

		e.StampInvoice("INV-20260201-0001")
		e.SetCreatedBy(uuid.Nil)
		require.NotNil(t, e.InvoiceNumber)
		assert.Equal(t, InvoiceNumber("INV-20260201-0001"), *e.InvoiceNumber)
		assert.Nil(t, e.CreatedBy)
	})
}

func TestGroupWagesByMonth(t *testing.T) {
	emp := uuid.New()
	line := func(date, amount string) WageLine {
		l, err := NewWageLine(VentureCarenderia, day(date), emp, "Ana", decimal.NewFromInt(500), decimal.NewFromInt(1), decimal.RequireFromString(amount))
		require.NoError(t, err)
		return *l
	}

	lines := []WageLine{
		line("2026-02-01", "500"),
		line("2026-02-03", "450.50"),
		line("2026-02-03", "300"),
		line("2026-03-01", "999"),
	}

	report := GroupWagesByMonth(lines, 2026, time.February)
	require.Len(t, report.Days, 2)
	assert.Equal(t, day("2026-02-03"), report.Days[0].Date)
	assert.True(t, report.Days[0].Total.Equal(decimal.RequireFromString("750.50")))
	assert.Len(t, report.Days[0].Lines, 2)
	assert.True(t, report.Total.Equal(decimal.RequireFromString("1250.50")))

	empty := GroupWagesByMonth(lines, 2026, time.April)
	assert.Empty(t, empty.Days)
	assert.True(t, empty.Total.IsZero())
}

func TestNewWageLine(t *testing.T) {
	l, err := NewWageLine(VentureCatering, day("2026-02-01"), uuid.New(), "Ben", decimal.NewFromInt(450), decimal.RequireFromString("1.5"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, l.Amount.Equal(decimal.NewFromInt(675)))

	_, err = NewWageLine(VentureCatering, day("2026-02-01"), uuid.Nil, "Ben", decimal.NewFromInt(450), decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewWageLine(VentureCatering, day("2026-02-01"), uuid.New(), "Ben", decimal.Zero, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestVenture(t *testing.T) {
	v, ok := ParseVenture("Catering")
	require.True(t, ok)
	assert.Equal(t, VentureCatering, v)
	assert.True(t, v.AllowsDepartment("catering"))
	assert.True(t, v.AllowsDepartment("Corporate"))
	assert.False(t, v.AllowsDepartment("Construction"))

	_, ok = ParseVenture("bakery")
	assert.False(t, ok)
}

func TestVenture_AllowsCategory(t *testing.T) {
	assert.True(t, VentureCarenderia.AllowsCategory(CategoryDailySales))
	assert.True(t, VentureCarenderia.AllowsCategory(CategoryMayorsPermit))
	assert.False(t, VentureCarenderia.AllowsCategory(CategoryMaterials))
	assert.False(t, VentureCarenderia.AllowsCategory(CategoryBookingPayment))

	assert.True(t, VentureCatering.AllowsCategory(CategoryPurchases))
	assert.False(t, VentureCatering.AllowsCategory(CategoryDailySales))

	assert.True(t, VentureConstruction.AllowsCategory(CategoryLabor))
	assert.False(t, VentureConstruction.AllowsCategory(CategoryRental))
	assert.False(t, Venture("bakery").AllowsCategory(CategoryRental))
}
