package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/smbc/backend/internal/application/report"
)

const footerTemplate = `<div style="font-size:7pt;width:100%;text-align:right;padding-right:10mm;">` +
	`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// CompanyInfo is printed in every report header
type CompanyInfo struct {
	Name    string
	Address string
}

// ReportRenderer renders report views through the HTML templates and an HTMLRenderer
type ReportRenderer struct {
	engine   *TemplateEngine
	html     HTMLRenderer
	company  CompanyInfo
	timeout  time.Duration
	location *time.Location
}

// NewReportRenderer creates a ReportRenderer
func NewReportRenderer(html HTMLRenderer, company CompanyInfo, timeout time.Duration, loc *time.Location) (*ReportRenderer, error) {
	engine, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReportRenderer{engine: engine, html: html, company: company, timeout: timeout, location: loc}, nil
}

// RenderTrialBalance renders the trial balance in landscape, one column per category
func (r *ReportRenderer) RenderTrialBalance(ctx context.Context, tb *report.TrialBalanceResponse) ([]byte, error) {
	title := fmt.Sprintf("%s Trial Balance", tb.VentureLabel)
	return r.render(ctx, TemplateTrialBalance, title, tb.MonthLabel, true, tb)
}

// RenderBalanceSheet renders the balance sheet in portrait
func (r *ReportRenderer) RenderBalanceSheet(ctx context.Context, bs *report.BalanceSheetResponse) ([]byte, error) {
	title := fmt.Sprintf("%s Balance Sheet", bs.VentureLabel)
	return r.render(ctx, TemplateBalanceSheet, title, bs.MonthLabel, false, bs)
}

// RenderProjectBalanceSheet renders the construction balance sheet in
// portrait: the overall summary first, then one row per project
func (r *ReportRenderer) RenderProjectBalanceSheet(ctx context.Context, bs *report.ProjectBalanceSheetResponse) ([]byte, error) {
	scope := fmt.Sprintf("Project: %s · as of %s", bs.Scope, dayLabel(bs.AsOf))
	return r.render(ctx, TemplateProjectBalanceSheet, "Construction Balance Sheet", scope, false, bs)
}

func (r *ReportRenderer) render(ctx context.Context, name, title, month string, landscape bool, data any) ([]byte, error) {
	html, err := r.engine.Execute(name, reportPage{
		Company:  r.company.Name,
		Address:  r.company.Address,
		Title:    title,
		Subtitle: fmt.Sprintf("%s · generated %s", month, time.Now().In(r.location).Format("Jan 02, 2006 15:04")),
		Report:   data,
	})
	if err != nil {
		return nil, err
	}

	res, err := r.html.Render(ctx, &RenderRequest{
		HTML:       html,
		Title:      title,
		PaperSize:  PaperSizeA4,
		Landscape:  landscape,
		FooterHTML: footerTemplate,
		Timeout:    r.timeout,
	})
	if err != nil {
		return nil, err
	}
	return res.PDFData, nil
}

var _ report.PDFRenderer = (*ReportRenderer)(nil)
