package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Service builds monthly venture reports and construction project balances
// from ledger rows
type Service struct {
	entries  ledger.EntryRepository
	wages    ledger.WageRepository
	projects construction.ProjectRepository
	pdf      PDFRenderer
	xlsx     SpreadsheetWriter
	archiver Archiver
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new report Service. pdf, xlsx and archiver may be nil;
// exports needing a missing one fail with a validation error.
func NewService(entries ledger.EntryRepository, wages ledger.WageRepository, projects construction.ProjectRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		entries:  entries,
		wages:    wages,
		projects: projects,
		logger:   logger,
		now:      time.Now,
	}
}

// SetPDFRenderer sets the PDF renderer
func (s *Service) SetPDFRenderer(r PDFRenderer) {
	s.pdf = r
}

// SetSpreadsheetWriter sets the XLSX writer
func (s *Service) SetSpreadsheetWriter(w SpreadsheetWriter) {
	s.xlsx = w
}

// SetArchiver enables archiving of exported files
func (s *Service) SetArchiver(a Archiver) {
	s.archiver = a
}

// SetClock overrides the time source
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// period is a validated report month clipped to today
type period struct {
	venture ledger.Venture
	year    int
	month   time.Month
	from    time.Time
	to      time.Time
}

func (p period) key() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}

// resolvePeriod rejects future months and clips the current month to today
func (s *Service) resolvePeriod(venture ledger.Venture, month string) (period, error) {
	if !venture.IsValid() {
		return period{}, shared.NewValidationError(fmt.Sprintf("unknown venture %q", venture))
	}
	year, m, err := shared.ParseMonth(month)
	if err != nil {
		return period{}, err
	}
	first, last := shared.MonthBounds(year, m)
	today := shared.DayOf(s.now())
	if first.After(today) {
		return period{}, shared.NewValidationError(fmt.Sprintf("%s is in the future", month))
	}
	if last.After(today) {
		last = today
	}
	return period{venture: venture, year: year, month: m, from: first, to: last}, nil
}

// loadRows reads the ledger rows of the period. Wage lines are a register of
// who was paid; only Wages transactions reach the report columns.
func (s *Service) loadRows(ctx context.Context, p period) ([]ledger.Entry, error) {
	return s.entries.Find(ctx, ledger.EntryFilter{
		Venture: p.venture,
		From:    &p.from,
		To:      &p.to,
	})
}

func (s *Service) rollup(ctx context.Context, p period) (*ledger.MonthlyRollup, error) {
	rows, err := s.loadRows(ctx, p)
	if err != nil {
		return nil, err
	}
	return ledger.AggregateByMonth(rows, p.year, p.month)
}

// TrialBalance returns per-day, per-category sums of a month, oldest day first
func (s *Service) TrialBalance(ctx context.Context, venture ledger.Venture, month string) (*TrialBalanceResponse, error) {
	p, err := s.resolvePeriod(venture, month)
	if err != nil {
		return nil, err
	}
	r, err := s.rollup(ctx, p)
	if err != nil {
		return nil, err
	}

	resp := &TrialBalanceResponse{
		Venture:         venture.String(),
		VentureLabel:    ventureLabel(venture),
		Month:           p.key(),
		MonthLabel:      monthLabel(p),
		From:            p.from.Format(shared.DateLayout),
		To:              p.to.Format(shared.DateLayout),
		Columns:         make([]Column, len(r.Columns)),
		Days:            make([]TrialBalanceDay, 0, len(r.Days)),
		Totals:          make([]decimal.Decimal, len(r.Columns)),
		TotalIncome:     r.TotalIncome,
		TotalDeductions: r.TotalDeductions,
		Net:             r.Net,
	}
	for i, c := range r.Columns {
		resp.Columns[i] = Column{Category: c.String(), Label: c.DisplayName(), Bucket: string(c.Bucket())}
		resp.Totals[i] = r.Amount(c)
	}
	for _, d := range r.Ascending() {
		day := TrialBalanceDay{
			Date:            d.Date.Format(shared.DateLayout),
			Amounts:         make([]decimal.Decimal, len(r.Columns)),
			TotalIncome:     d.TotalIncome,
			TotalDeductions: d.TotalDeductions,
			Net:             d.Net,
		}
		for i, c := range r.Columns {
			day.Amounts[i] = d.Amount(c)
		}
		resp.Days = append(resp.Days, day)
	}
	return resp, nil
}

// BalanceSheet returns income against wages and other expenses per day, newest
// first. Construction has no income rows; its balance sheet is per project.
func (s *Service) BalanceSheet(ctx context.Context, venture ledger.Venture, month string) (*BalanceSheetResponse, error) {
	if venture == ledger.VentureConstruction {
		return nil, shared.NewValidationError("construction balance sheets are per project")
	}
	p, err := s.resolvePeriod(venture, month)
	if err != nil {
		return nil, err
	}
	r, err := s.rollup(ctx, p)
	if err != nil {
		return nil, err
	}

	resp := &BalanceSheetResponse{
		Venture:       venture.String(),
		VentureLabel:  ventureLabel(venture),
		Month:         p.key(),
		MonthLabel:    monthLabel(p),
		Rows:          make([]BalanceSheetRow, 0, len(r.Days)),
		TotalIncome:   r.TotalIncome,
		TotalWages:    r.Amount(ledger.CategoryWages),
		TotalExpenses: r.TotalDeductions.Sub(r.Amount(ledger.CategoryWages)),
		Net:           r.Net,
	}
	for _, d := range r.Descending() {
		wages := d.Amount(ledger.CategoryWages)
		resp.Rows = append(resp.Rows, BalanceSheetRow{
			Date:     d.Date.Format(shared.DateLayout),
			Income:   d.TotalIncome,
			Wages:    wages,
			Expenses: d.TotalDeductions.Sub(wages),
			Net:      d.Net,
		})
	}
	return resp, nil
}

// WagesReport returns the wage lines of a month grouped by day, newest first
func (s *Service) WagesReport(ctx context.Context, venture ledger.Venture, month string) (*WagesReportResponse, error) {
	p, err := s.resolvePeriod(venture, month)
	if err != nil {
		return nil, err
	}
	lines, err := s.wages.FindByMonth(ctx, venture, p.year, p.month)
	if err != nil {
		return nil, err
	}
	grouped := ledger.GroupWagesByMonth(lines, p.year, p.month)

	resp := &WagesReportResponse{
		Venture: venture.String(),
		Month:   p.key(),
		Days:    make([]WageDayView, 0, len(grouped.Days)),
		Total:   grouped.Total,
	}
	for _, d := range grouped.Days {
		view := WageDayView{
			Date:  d.Date.Format(shared.DateLayout),
			Lines: make([]WageLineView, len(d.Lines)),
			Total: d.Total,
		}
		for i, l := range d.Lines {
			view.Lines[i] = WageLineView{
				EmployeeID:   l.EmployeeID.String(),
				EmployeeName: l.EmployeeName,
				Role:         l.Role,
				RatePerDay:   l.RatePerDay,
				Days:         l.Days,
				Amount:       l.Amount,
			}
		}
		resp.Days = append(resp.Days, view)
	}
	return resp, nil
}

// AvailableMonths lists the months with rows for a venture, newest first
func (s *Service) AvailableMonths(ctx context.Context, venture ledger.Venture) ([]MonthOption, error) {
	if !venture.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown venture %q", venture))
	}
	months, err := s.entries.AvailableMonths(ctx, venture)
	if err != nil {
		return nil, err
	}
	out := make([]MonthOption, len(months))
	for i, m := range months {
		out[i] = MonthOption{
			Value: fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)),
			Label: fmt.Sprintf("%s %d", m.Month, m.Year),
		}
	}
	return out, nil
}

// Export renders a report to a file and archives it when an archiver is set.
// Archive failures are logged; the rendered file is still returned.
func (s *Service) Export(ctx context.Context, venture ledger.Venture, kind, month, format string) (*ExportResult, error) {
	if format == "" {
		format = FormatPDF
	}
	p, err := s.resolvePeriod(venture, month)
	if err != nil {
		return nil, err
	}
	month = p.key()

	var res *ExportResult
	switch {
	case kind == KindBalanceSheet && format == FormatPDF && venture == ledger.VentureConstruction:
		name := fmt.Sprintf("balance-sheet-%s-%s.pdf", venture, month)
		res, err = s.exportProjectBalanceSheetPDF(ctx, nil, p.to, name)
	case kind == KindTrialBalance && format == FormatPDF:
		res, err = s.exportTrialBalancePDF(ctx, venture, month)
	case kind == KindTrialBalance && format == FormatXLSX:
		res, err = s.exportTrialBalanceXLSX(ctx, venture, month)
	case kind == KindBalanceSheet && format == FormatPDF:
		res, err = s.exportBalanceSheetPDF(ctx, venture, month)
	default:
		return nil, shared.NewValidationError(fmt.Sprintf("%s cannot be exported as %s", kind, format))
	}
	if err != nil {
		return nil, err
	}

	s.archive(ctx, venture, month, res)

	s.logger.Info("report exported",
		zap.String("venture", venture.String()),
		zap.String("kind", kind),
		zap.String("month", month),
		zap.String("format", format),
		zap.Int("bytes", len(res.Data)))
	return res, nil
}

// archive stores res under reports/{venture}/{month}/{file} when an archiver
// is set. Failures are logged and leave ArchiveKey empty.
func (s *Service) archive(ctx context.Context, venture ledger.Venture, month string, res *ExportResult) {
	if s.archiver == nil {
		return
	}
	key := fmt.Sprintf("reports/%s/%s/%s", venture, month, res.Filename)
	location, err := s.archiver.Archive(ctx, key, res.ContentType, res.Data)
	if err != nil {
		s.logger.Warn("report archive failed", zap.String("key", key), zap.Error(err))
		return
	}
	res.ArchiveKey = location
}

func (s *Service) exportTrialBalancePDF(ctx context.Context, venture ledger.Venture, month string) (*ExportResult, error) {
	if s.pdf == nil {
		return nil, shared.NewValidationError("PDF export is not configured")
	}
	tb, err := s.TrialBalance(ctx, venture, month)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.RenderTrialBalance(ctx, tb)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("trial-balance-%s-%s.pdf", venture, tb.Month),
		ContentType: contentTypePDF,
		Data:        data,
	}, nil
}

func (s *Service) exportTrialBalanceXLSX(ctx context.Context, venture ledger.Venture, month string) (*ExportResult, error) {
	if s.xlsx == nil {
		return nil, shared.NewValidationError("XLSX export is not configured")
	}
	tb, err := s.TrialBalance(ctx, venture, month)
	if err != nil {
		return nil, err
	}
	data, err := s.xlsx.WriteTrialBalance(tb)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("trial-balance-%s-%s.xlsx", venture, tb.Month),
		ContentType: contentTypeXLSX,
		Data:        data,
	}, nil
}

func (s *Service) exportBalanceSheetPDF(ctx context.Context, venture ledger.Venture, month string) (*ExportResult, error) {
	if s.pdf == nil {
		return nil, shared.NewValidationError("PDF export is not configured")
	}
	bs, err := s.BalanceSheet(ctx, venture, month)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.RenderBalanceSheet(ctx, bs)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("balance-sheet-%s-%s.pdf", venture, bs.Month),
		ContentType: contentTypePDF,
		Data:        data,
	}, nil
}

func ventureLabel(v ledger.Venture) string {
	return cases.Title(language.English).String(v.String())
}

func monthLabel(p period) string {
	return fmt.Sprintf("%s %d", p.month, p.year)
}
