// Package export writes report views to spreadsheet files
package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/application/report"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Trial Balance"
	// builtin number format 4 is #,##0.00
	moneyNumFmt  = 4
	headerRow    = 4
	firstDataRow = headerRow + 1
)

// XLSXWriter writes the trial balance as an Excel workbook
type XLSXWriter struct {
	company string
}

// NewXLSXWriter creates an XLSXWriter
func NewXLSXWriter(company string) *XLSXWriter {
	return &XLSXWriter{company: company}
}

// WriteTrialBalance lays out one row per day and one column per category,
// followed by income, deductions and net, with a totals row at the bottom
func (w *XLSXWriter) WriteTrialBalance(tb *report.TrialBalanceResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	headers := make([]string, 0, len(tb.Columns)+4)
	headers = append(headers, "Date")
	for _, c := range tb.Columns {
		headers = append(headers, c.Label)
	}
	headers = append(headers, "Total Income", "Total Deductions", "Net")
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}

	sw := sheetWriter{f: f}
	sw.set("A1", w.company)
	sw.set("A2", fmt.Sprintf("%s Trial Balance", tb.VentureLabel))
	sw.set("A3", fmt.Sprintf("%s (%s to %s)", tb.MonthLabel, tb.From, tb.To))
	sw.style("A1", "A2", styles.title)

	for i, h := range headers {
		sw.setAt(i+1, headerRow, h)
	}
	sw.style(cell(1, headerRow), cell(len(headers), headerRow), styles.header)

	row := firstDataRow
	for _, day := range tb.Days {
		sw.setAt(1, row, day.Date)
		sw.moneyRow(row, 2, day.Amounts, day.TotalIncome, day.TotalDeductions, day.Net)
		row++
	}
	if len(tb.Days) > 0 {
		sw.style(cell(2, firstDataRow), cell(len(headers), row-1), styles.money)
	}

	sw.setAt(1, row, "Total")
	sw.moneyRow(row, 2, tb.Totals, tb.TotalIncome, tb.TotalDeductions, tb.Net)
	sw.style(cell(1, row), cell(len(headers), row), styles.total)

	if sw.err == nil {
		sw.err = f.SetColWidth(sheetName, "A", "A", 14)
	}
	if sw.err == nil {
		sw.err = f.SetColWidth(sheetName, "B", lastCol, 16)
	}
	if sw.err == nil {
		sw.err = f.SetPanes(sheetName, &excelize.Panes{
			Freeze:      true,
			XSplit:      1,
			YSplit:      headerRow,
			TopLeftCell: cell(2, firstDataRow),
			ActivePane:  "bottomRight",
		})
	}
	if sw.err != nil {
		return nil, fmt.Errorf("write trial balance sheet: %w", sw.err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	title, header, money, total int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"EEEEEE"}},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	}); err != nil {
		return s, err
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt}); err != nil {
		return s, err
	}
	s.total, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: moneyNumFmt,
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	})
	return s, err
}

// sheetWriter keeps the first error so the layout code stays linear
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(ref string, v any) {
	if w.err == nil {
		w.err = w.f.SetCellValue(sheetName, ref, v)
	}
}

func (w *sheetWriter) setAt(col, row int, v any) {
	w.set(cell(col, row), v)
}

func (w *sheetWriter) style(from, to string, id int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(sheetName, from, to, id)
	}
}

// moneyRow writes amounts then the trailing summary values starting at col
func (w *sheetWriter) moneyRow(row, col int, amounts []decimal.Decimal, tail ...decimal.Decimal) {
	for _, a := range append(append([]decimal.Decimal{}, amounts...), tail...) {
		w.setAt(col, row, a.Round(2).InexactFloat64())
		col++
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

var _ report.SpreadsheetWriter = (*XLSXWriter)(nil)
