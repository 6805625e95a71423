package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(t *testing.T, owner ledger.Owner, c ledger.Category, amount string, day time.Time) *ledger.Entry {
	t.Helper()
	e, err := ledger.NewEntry(owner, c, decimal.RequireFromString(amount), day, "")
	require.NoError(t, err)
	return e
}

func TestGormEntryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips every field", func(t *testing.T) {
		repo := NewGormEntryRepository(newSQLiteDB(t, 1))
		projectID := uuid.New()
		employeeID := uuid.New()
		actor := uuid.New()

		e := newEntry(t, ledger.RefOwner(ledger.VentureConstruction, projectID), ledger.CategoryLabor, "3300.50", date(2026, 2, 3))
		e.Description = "Juan"
		e.Reference = "OR-1"
		e.StampInvoice("INV-20260203-0001")
		e.SetCreatedBy(actor)
		e.Detail = &ledger.LineDetail{
			EmployeeID:    &employeeID,
			EmployeeName:  "Juan",
			RatePerDay:    decimal.NewFromInt(600),
			Days:          decimal.NewFromInt(5),
			OvertimeHours: decimal.NewFromInt(4),
			Overtime:      decimal.NewFromInt(300),
		}
		require.NoError(t, repo.SaveBatch(ctx, []*ledger.Entry{e}))

		got, err := repo.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.VentureConstruction, got.Owner.Venture)
		require.NotNil(t, got.Owner.RefID)
		assert.Equal(t, projectID, *got.Owner.RefID)
		assert.Equal(t, ledger.CategoryLabor, got.Category)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("3300.50")))
		assert.Equal(t, date(2026, 2, 3), got.Date)
		require.NotNil(t, got.InvoiceNumber)
		assert.Equal(t, ledger.InvoiceNumber("INV-20260203-0001"), *got.InvoiceNumber)
		assert.Equal(t, "OR-1", got.Reference)
		require.NotNil(t, got.CreatedBy)
		assert.Equal(t, actor, *got.CreatedBy)
		require.NotNil(t, got.Detail)
		assert.Equal(t, employeeID, *got.Detail.EmployeeID)
		assert.True(t, got.Detail.Overtime.Equal(decimal.NewFromInt(300)))
	})

	t.Run("find filters by venture, range and category", func(t *testing.T) {
		repo := NewGormEntryRepository(newSQLiteDB(t, 1))
		carenderia := ledger.VentureOwner(ledger.VentureCarenderia)
		catering := ledger.VentureOwner(ledger.VentureCatering)

		require.NoError(t, repo.SaveBatch(ctx, []*ledger.Entry{
			newEntry(t, carenderia, ledger.CategoryDailySales, "1000", date(2026, 1, 31)),
			newEntry(t, carenderia, ledger.CategoryDailySales, "1200", date(2026, 2, 1)),
			newEntry(t, carenderia, ledger.CategoryRental, "5000", date(2026, 2, 1)),
			newEntry(t, carenderia, ledger.CategoryWages, "300", date(2026, 2, 10)),
			newEntry(t, catering, ledger.CategoryPurchases, "800", date(2026, 2, 2)),
		}))

		from, to := shared.MonthBounds(2026, time.February)
		rows, err := repo.Find(ctx, ledger.EntryFilter{Venture: ledger.VentureCarenderia, From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, date(2026, 2, 1), rows[0].Date)
		assert.Equal(t, date(2026, 2, 10), rows[2].Date)

		desc, err := repo.Find(ctx, ledger.EntryFilter{Venture: ledger.VentureCarenderia, From: &from, To: &to, Descending: true, Limit: 1})
		require.NoError(t, err)
		require.Len(t, desc, 1)
		assert.Equal(t, date(2026, 2, 10), desc[0].Date)

		sales, err := repo.Find(ctx, ledger.EntryFilter{
			Venture:    ledger.VentureCarenderia,
			Categories: []ledger.Category{ledger.CategoryDailySales},
		})
		require.NoError(t, err)
		assert.Len(t, sales, 2)
	})

	t.Run("find by invoice and by ref", func(t *testing.T) {
		repo := NewGormEntryRepository(newSQLiteDB(t, 1))
		bookingID := uuid.New()
		owner := ledger.RefOwner(ledger.VentureCatering, bookingID)

		p1 := newEntry(t, owner, ledger.CategoryBookingPayment, "2000", date(2026, 2, 1))
		p2 := newEntry(t, owner, ledger.CategoryBookingPayment, "500", date(2026, 2, 5))
		other := newEntry(t, ledger.RefOwner(ledger.VentureCatering, uuid.New()), ledger.CategoryBookingPayment, "9", date(2026, 2, 1))
		p1.StampInvoice("INV-20260201-0001")
		require.NoError(t, repo.SaveBatch(ctx, []*ledger.Entry{p2, p1, other}))

		paid, err := repo.FindByRef(ctx, bookingID, ledger.CategoryBookingPayment)
		require.NoError(t, err)
		require.Len(t, paid, 2)
		assert.Equal(t, p1.ID, paid[0].ID)

		inv := ledger.InvoiceNumber("INV-20260201-0001")
		byInvoice, err := repo.Find(ctx, ledger.EntryFilter{Invoice: &inv})
		require.NoError(t, err)
		require.Len(t, byInvoice, 1)
		assert.Equal(t, p1.ID, byInvoice[0].ID)
	})

	t.Run("update and delete", func(t *testing.T) {
		repo := NewGormEntryRepository(newSQLiteDB(t, 1))
		e := newEntry(t, ledger.VentureOwner(ledger.VentureCarenderia), ledger.CategoryDailySales, "100", date(2026, 2, 1))
		require.NoError(t, repo.SaveBatch(ctx, []*ledger.Entry{e}))

		require.NoError(t, e.Update(ledger.CategoryMaintenance, decimal.RequireFromString("75.25"), date(2026, 2, 2)))
		require.NoError(t, repo.Save(ctx, e))

		got, err := repo.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.CategoryMaintenance, got.Category)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("75.25")))
		assert.Equal(t, date(2026, 2, 2), got.Date)

		require.NoError(t, repo.Delete(ctx, e.ID))
		_, err = repo.FindByID(ctx, e.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, e.ID), shared.ErrNotFound)
		assert.ErrorIs(t, repo.Save(ctx, e), shared.ErrNotFound)
	})

	t.Run("update keeps line detail changes", func(t *testing.T) {
		repo := NewGormEntryRepository(newSQLiteDB(t, 1))
		e := newEntry(t, ledger.RefOwner(ledger.VentureConstruction, uuid.New()), ledger.CategoryMaterials, "2655", date(2026, 2, 5))
		e.Detail = &ledger.LineDetail{Item: "Cement", Quantity: decimal.NewFromInt(10), Unit: "bag", UnitPrice: decimal.RequireFromString("265.50")}
		require.NoError(t, repo.SaveBatch(ctx, []*ledger.Entry{e}))

		e.Detail.Quantity = decimal.NewFromInt(12)
		e.Amount = decimal.NewFromInt(3186)
		require.NoError(t, repo.Save(ctx, e))

		got, err := repo.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(3186)))
		require.NotNil(t, got.Detail)
		assert.True(t, got.Detail.Quantity.Equal(decimal.NewFromInt(12)))
		assert.Equal(t, "bag", got.Detail.Unit)
		require.NotNil(t, got.Owner.RefID)
	})

	t.Run("available months newest first", func(t *testing.T) {
		repo := NewGormEntryRepository(newSQLiteDB(t, 1))
		owner := ledger.VentureOwner(ledger.VentureCarenderia)
		require.NoError(t, repo.SaveBatch(ctx, []*ledger.Entry{
			newEntry(t, owner, ledger.CategoryDailySales, "1", date(2025, 12, 3)),
			newEntry(t, owner, ledger.CategoryDailySales, "1", date(2026, 2, 1)),
			newEntry(t, owner, ledger.CategoryDailySales, "1", date(2026, 2, 9)),
			newEntry(t, ledger.VentureOwner(ledger.VentureCatering), ledger.CategoryPurchases, "1", date(2026, 3, 1)),
		}))

		months, err := repo.AvailableMonths(ctx, ledger.VentureCarenderia)
		require.NoError(t, err)
		assert.Equal(t, []ledger.YearMonth{
			{Year: 2026, Month: time.February},
			{Year: 2025, Month: time.December},
		}, months)

		none, err := repo.AvailableMonths(ctx, ledger.VentureConstruction)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		repo := NewGormEntryRepository(newSQLiteDB(t, 1))
		assert.NoError(t, repo.SaveBatch(ctx, nil))
	})
}

func TestGormWageRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWageRepository(newSQLiteDB(t, 1))

	line := func(v ledger.Venture, day time.Time, name string) *ledger.WageLine {
		l, err := ledger.NewWageLine(v, day, uuid.New(), name, decimal.NewFromInt(500), decimal.NewFromInt(1), decimal.Zero)
		require.NoError(t, err)
		return l
	}

	require.NoError(t, repo.SaveBatch(ctx, []*ledger.WageLine{
		line(ledger.VentureCarenderia, date(2026, 2, 1), "Ana"),
		line(ledger.VentureCarenderia, date(2026, 2, 3), "Ben"),
		line(ledger.VentureCarenderia, date(2026, 3, 1), "Cora"),
		line(ledger.VentureCatering, date(2026, 2, 3), "Dan"),
	}))

	lines, err := repo.FindByMonth(ctx, ledger.VentureCarenderia, 2026, time.February)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Ben", lines[0].EmployeeName)
	assert.Equal(t, date(2026, 2, 3), lines[0].Date)
	assert.True(t, lines[1].Amount.Equal(decimal.NewFromInt(500)))
}
