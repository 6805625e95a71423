package integration

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	appledger "github.com/smbc/backend/internal/application/ledger"
	appreport "github.com/smbc/backend/internal/application/report"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/infrastructure/persistence"
	"github.com/smbc/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type ledgerSetup struct {
	recorder *appledger.RecordingService
	projects *appledger.ProjectService
	reports  *appreport.Service
	entries  ledger.EntryRepository
}

func newLedgerSetup(t *testing.T, tdb *TestDB) *ledgerSetup {
	t.Helper()
	clock := testutil.FixedClock(t, 2026, time.February, 10)

	scope := persistence.NewGormTransactionScope(tdb.DB)
	entries := persistence.NewGormEntryRepository(tdb.DB)
	projectRepo := persistence.NewGormProjectRepository(tdb.DB)

	recorder := appledger.NewRecordingService(scope.Ledger(), entries, projectRepo, persistence.NewGormInvoiceSequence(tdb.DB), nil)
	recorder.SetClock(clock)
	reports := appreport.NewService(entries, persistence.NewGormWageRepository(tdb.DB), projectRepo, nil)
	reports.SetClock(clock)

	return &ledgerSetup{
		recorder: recorder,
		projects: appledger.NewProjectService(projectRepo, nil),
		reports:  reports,
		entries:  entries,
	}
}

// Concurrent batches on the same issue day must each get a distinct number
// with no gaps.
func TestConcurrentBatchesGetSequentialInvoiceNumbers(t *testing.T) {
	tdb := NewTestDB(t)
	s := newLedgerSetup(t, tdb)
	ctx, _ := testutil.ContextWithTimeout(t, time.Minute)

	project, err := s.projects.Create(ctx, appledger.CreateProjectRequest{
		ContractorName: "SMBC", ProjectName: "Barangay Hall", DurationDays: 120,
		ContractPrice: decimal.NewFromInt(2_500_000),
	})
	require.NoError(t, err)

	const batches = 20
	numbers := make([]string, batches)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < batches; i++ {
		g.Go(func() error {
			resp, err := s.recorder.RecordMaterials(gctx, testutil.TestUserID(), appledger.RecordMaterialsRequest{
				BatchHeader: appledger.BatchHeader{ProjectID: project.ID, ExpenseDate: "2026-02-09"},
				Lines: []appledger.MaterialLineRequest{{
					Item: fmt.Sprintf("Rebar %d", i), Quantity: decimal.NewFromInt(2), Unit: "pc", UnitPrice: decimal.NewFromInt(180),
				}},
			})
			if err != nil {
				return err
			}
			numbers[i] = resp.InvoiceNumber
			return nil
		})
	}
	require.NoError(t, g.Wait())

	sort.Strings(numbers)
	for i, n := range numbers {
		assert.Equal(t, fmt.Sprintf("INV-20260210-%04d", i+1), n)
	}

	peek, err := s.recorder.PeekInvoiceNumber(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-20260210-%04d", batches+1), peek.InvoiceNumber)
}

func TestFailedBatchDoesNotConsumeInvoiceNumber(t *testing.T) {
	tdb := NewTestDB(t)
	s := newLedgerSetup(t, tdb)
	ctx := context.Background()

	project, err := s.projects.Create(ctx, appledger.CreateProjectRequest{
		ContractorName: "SMBC", ProjectName: "Seawall", DurationDays: 30, ContractPrice: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	_, err = s.recorder.RecordMaterials(ctx, testutil.TestUserID(), appledger.RecordMaterialsRequest{
		BatchHeader: appledger.BatchHeader{ProjectID: project.ID, ExpenseDate: "2026-02-09"},
		Lines: []appledger.MaterialLineRequest{
			{Item: "Sand", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(900)},
			{Item: "Gravel", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(900)},
		},
	})
	require.Error(t, err)

	peek, err := s.recorder.PeekInvoiceNumber(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "INV-20260210-0001", peek.InvoiceNumber)

	rows, err := s.entries.Find(ctx, ledger.EntryFilter{Venture: ledger.VentureConstruction})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCarenderiaTrialBalanceOnPostgres(t *testing.T) {
	tdb := NewTestDB(t)
	s := newLedgerSetup(t, tdb)
	ctx := context.Background()

	_, err := s.recorder.RecordEntries(ctx, testutil.TestUserID(), ledger.VentureCarenderia, appledger.RecordEntriesRequest{
		Lines: []appledger.EntryLineRequest{
			{Date: "2026-02-02", Category: "DAILY_SALES", Amount: decimal.RequireFromString("1500.00")},
			{Date: "2026-02-02", Category: "ELECTRIC_BILL", Amount: decimal.RequireFromString("320.50")},
			{Date: "2026-02-05", Category: "DAILY_SALES", Amount: decimal.RequireFromString("980.25")},
		},
	})
	require.NoError(t, err)

	tb, err := s.reports.TrialBalance(ctx, ledger.VentureCarenderia, "2026-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", tb.To)
	assert.True(t, decimal.RequireFromString("2480.25").Equal(tb.TotalIncome), tb.TotalIncome.String())
	assert.True(t, decimal.RequireFromString("320.50").Equal(tb.TotalDeductions), tb.TotalDeductions.String())
	assert.True(t, decimal.RequireFromString("2159.75").Equal(tb.Net), tb.Net.String())

	months, err := s.reports.AvailableMonths(ctx, ledger.VentureCarenderia)
	require.NoError(t, err)
	require.NotEmpty(t, months)
}

func TestProjectBalanceSheetOnPostgres(t *testing.T) {
	tdb := NewTestDB(t)
	s := newLedgerSetup(t, tdb)
	ctx := context.Background()

	hall, err := s.projects.Create(ctx, appledger.CreateProjectRequest{
		ContractorName: "SMBC", ProjectName: "Barangay Hall", DurationDays: 90, ContractPrice: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)
	court, err := s.projects.Create(ctx, appledger.CreateProjectRequest{
		ContractorName: "SMBC", ProjectName: "Covered Court", DurationDays: 60, ContractPrice: decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	_, err = s.recorder.RecordMaterials(ctx, testutil.TestUserID(), appledger.RecordMaterialsRequest{
		BatchHeader: appledger.BatchHeader{ProjectID: hall.ID, ExpenseDate: "2026-02-09"},
		Lines: []appledger.MaterialLineRequest{
			{Item: "Cement", Quantity: decimal.NewFromInt(10), Unit: "bag", UnitPrice: decimal.NewFromInt(265)},
		},
	})
	require.NoError(t, err)
	_, err = s.recorder.RecordGasoline(ctx, testutil.TestUserID(), appledger.RecordAmountsRequest{
		BatchHeader: appledger.BatchHeader{ProjectID: court.ID, ExpenseDate: "2026-02-09"},
		Lines:       []appledger.AmountLineRequest{{Amount: decimal.NewFromInt(1500)}},
	})
	require.NoError(t, err)

	bs, err := s.reports.ProjectBalanceSheet(ctx, nil)
	require.NoError(t, err)
	require.Len(t, bs.Projects, 2)
	assert.Equal(t, "Barangay Hall", bs.Projects[0].ProjectName)
	assert.True(t, decimal.NewFromInt(97350).Equal(bs.Projects[0].Balance), bs.Projects[0].Balance.String())
	assert.True(t, decimal.NewFromInt(48500).Equal(bs.Projects[1].Balance), bs.Projects[1].Balance.String())
	assert.True(t, decimal.NewFromInt(145850).Equal(bs.Summary.Balance), bs.Summary.Balance.String())
}
