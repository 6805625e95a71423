package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/application/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWriter_WriteTrialBalance(t *testing.T) {
	tb := &report.TrialBalanceResponse{
		VentureLabel: "Carenderia",
		MonthLabel:   "February 2026",
		From:         "2026-02-01",
		To:           "2026-02-28",
		Columns: []report.Column{
			{Category: "DailySales", Label: "Daily Sales"},
			{Category: "Wages", Label: "Wages"},
		},
		Days: []report.TrialBalanceDay{
			{
				Date:            "2026-02-01",
				Amounts:         []decimal.Decimal{decimal.RequireFromString("1200.50"), decimal.Zero},
				TotalIncome:     decimal.RequireFromString("1200.50"),
				TotalDeductions: decimal.Zero,
				Net:             decimal.RequireFromString("1200.50"),
			},
			{
				Date:            "2026-02-02",
				Amounts:         []decimal.Decimal{decimal.NewFromInt(800), decimal.NewFromInt(300)},
				TotalIncome:     decimal.NewFromInt(800),
				TotalDeductions: decimal.NewFromInt(300),
				Net:             decimal.NewFromInt(500),
			},
		},
		Totals:          []decimal.Decimal{decimal.RequireFromString("2000.50"), decimal.NewFromInt(300)},
		TotalIncome:     decimal.RequireFromString("2000.50"),
		TotalDeductions: decimal.NewFromInt(300),
		Net:             decimal.RequireFromString("1700.50"),
	}

	data, err := NewXLSXWriter("SMBC Ventures").WriteTrialBalance(tb)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	get := func(ref string) string {
		v, err := f.GetCellValue(sheetName, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "SMBC Ventures", get("A1"))
	assert.Equal(t, "Carenderia Trial Balance", get("A2"))
	assert.Equal(t, "Date", get("A4"))
	assert.Equal(t, "Daily Sales", get("B4"))
	assert.Equal(t, "Net", get("F4"))
	assert.Equal(t, "2026-02-01", get("A5"))
	assert.Equal(t, "1,200.50", get("B5"))
	assert.Equal(t, "Total", get("A7"))
	assert.Equal(t, "2,000.50", get("B7"))
	assert.Equal(t, "1,700.50", get("F7"))
}

func TestXLSXWriter_EmptyMonth(t *testing.T) {
	tb := &report.TrialBalanceResponse{
		VentureLabel:    "Catering",
		MonthLabel:      "March 2026",
		TotalIncome:     decimal.Zero,
		TotalDeductions: decimal.Zero,
		Net:             decimal.Zero,
	}

	data, err := NewXLSXWriter("SMBC Ventures").WriteTrialBalance(tb)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetName, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)
}
