package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appreport "github.com/smbc/backend/internal/application/report"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
)

// Reports computes and exports venture reports
type Reports interface {
	TrialBalance(ctx context.Context, venture ledger.Venture, month string) (*appreport.TrialBalanceResponse, error)
	BalanceSheet(ctx context.Context, venture ledger.Venture, month string) (*appreport.BalanceSheetResponse, error)
	WagesReport(ctx context.Context, venture ledger.Venture, month string) (*appreport.WagesReportResponse, error)
	AvailableMonths(ctx context.Context, venture ledger.Venture) ([]appreport.MonthOption, error)
	Export(ctx context.Context, venture ledger.Venture, kind, month, format string) (*appreport.ExportResult, error)
	ProjectBalanceSheet(ctx context.Context, projectID *uuid.UUID) (*appreport.ProjectBalanceSheetResponse, error)
	ExportProjectBalanceSheet(ctx context.Context, projectID *uuid.UUID) (*appreport.ExportResult, error)
	ProjectOverview(ctx context.Context, projectID uuid.UUID) (*appreport.ProjectOverviewResponse, error)
}

// ReportHandler serves the report endpoints of a venture
type ReportHandler struct {
	BaseHandler
	reports Reports
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports Reports) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// TrialBalance returns the per-day category table handler
// @Summary      Trial balance for a venture month
// @Tags         reports
// @Param        month query string true "YYYY-MM"
// @Success      200 {object} APIResponse[appreport.TrialBalanceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /{venture}/reports/trial-balance [get]
func (h *ReportHandler) TrialBalance(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q appreport.MonthQuery
		if !h.bindQuery(c, &q) {
			return
		}
		resp, err := h.reports.TrialBalance(c.Request.Context(), venture, q.Month)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}

// BalanceSheet returns the income versus expenses handler
func (h *ReportHandler) BalanceSheet(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q appreport.MonthQuery
		if !h.bindQuery(c, &q) {
			return
		}
		resp, err := h.reports.BalanceSheet(c.Request.Context(), venture, q.Month)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}

// Wages returns the per-day wage lines handler
func (h *ReportHandler) Wages(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q appreport.MonthQuery
		if !h.bindQuery(c, &q) {
			return
		}
		resp, err := h.reports.WagesReport(c.Request.Context(), venture, q.Month)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}

// Months returns the handler listing months that have rows, newest first
func (h *ReportHandler) Months(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		months, err := h.reports.AvailableMonths(c.Request.Context(), venture)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.SuccessList(c, months, len(months))
	}
}

// Export returns the file download handler for /reports/:kind/export
// @Summary      Export a report as PDF or XLSX
// @Tags         reports
// @Produce      application/pdf
// @Param        kind   path  string true  "trial-balance or balance-sheet"
// @Param        month  query string true  "YYYY-MM"
// @Param        format query string false "pdf (default) or xlsx"
// @Router       /{venture}/reports/{kind}/export [get]
func (h *ReportHandler) Export(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.Param("kind")
		if kind != appreport.KindTrialBalance && kind != appreport.KindBalanceSheet {
			h.Error(c, shared.CodeNotFound, "Unknown report "+kind)
			return
		}
		var q appreport.ExportQuery
		if !h.bindQuery(c, &q) {
			return
		}
		res, err := h.reports.Export(c.Request.Context(), venture, kind, q.Month, q.Format)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.file(c, res)
	}
}

// ProjectBalanceSheet godoc
// @Summary      Construction balance sheet as of today
// @Tags         reports
// @Param        project_id query string false "One project; all projects when empty" format(uuid)
// @Success      200 {object} APIResponse[appreport.ProjectBalanceSheetResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /construction/reports/balance-sheet [get]
func (h *ReportHandler) ProjectBalanceSheet(c *gin.Context) {
	projectID, ok := h.projectQuery(c)
	if !ok {
		return
	}
	resp, err := h.reports.ProjectBalanceSheet(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExportProjectBalanceSheet godoc
// @Summary      Download the construction balance sheet as PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        project_id query string false "One project; all projects when empty" format(uuid)
// @Router       /construction/reports/balance-sheet/export [get]
func (h *ReportHandler) ExportProjectBalanceSheet(c *gin.Context) {
	projectID, ok := h.projectQuery(c)
	if !ok {
		return
	}
	res, err := h.reports.ExportProjectBalanceSheet(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.file(c, res)
}

// ProjectOverview godoc
// @Summary      A project's balance with its expense rows, newest first
// @Tags         construction
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[appreport.ProjectOverviewResponse]
// @Router       /construction/projects/{id}/overview [get]
func (h *ReportHandler) ProjectOverview(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.reports.ProjectOverview(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ReportHandler) projectQuery(c *gin.Context) (*uuid.UUID, bool) {
	var q appreport.ProjectBalanceQuery
	if !h.bindQuery(c, &q) {
		return nil, false
	}
	if q.ProjectID == "" {
		return nil, true
	}
	id, err := uuid.Parse(q.ProjectID)
	if err != nil {
		h.Error(c, shared.CodeValidation, "Invalid project_id format")
		return nil, false
	}
	return &id, true
}

func (h *ReportHandler) file(c *gin.Context, res *appreport.ExportResult) {
	if res.ArchiveKey != "" {
		c.Header("X-Archive-Location", res.ArchiveKey)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Data)
}
