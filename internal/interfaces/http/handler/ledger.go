package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/smbc/backend/internal/application/ledger"
	"github.com/smbc/backend/internal/domain/ledger"
)

// Recorder records and edits ledger rows
type Recorder interface {
	RecordMaterials(ctx context.Context, actor uuid.UUID, req appledger.RecordMaterialsRequest) (*appledger.BatchResponse, error)
	RecordLabor(ctx context.Context, actor uuid.UUID, req appledger.RecordLaborRequest) (*appledger.BatchResponse, error)
	RecordGasoline(ctx context.Context, actor uuid.UUID, req appledger.RecordAmountsRequest) (*appledger.BatchResponse, error)
	RecordDocuments(ctx context.Context, actor uuid.UUID, req appledger.RecordAmountsRequest) (*appledger.BatchResponse, error)
	RecordObligations(ctx context.Context, actor uuid.UUID, req appledger.RecordAmountsRequest) (*appledger.BatchResponse, error)
	RecordEntries(ctx context.Context, actor uuid.UUID, venture ledger.Venture, req appledger.RecordEntriesRequest) (*appledger.BatchResponse, error)
	ListEntries(ctx context.Context, venture ledger.Venture, month string) ([]appledger.EntryResponse, error)
	UpdateEntry(ctx context.Context, venture ledger.Venture, id uuid.UUID, req appledger.UpdateEntryRequest) (*appledger.EntryResponse, error)
	DeleteEntry(ctx context.Context, venture ledger.Venture, id uuid.UUID) error
	RecordWages(ctx context.Context, actor uuid.UUID, venture ledger.Venture, req appledger.RecordWagesRequest) (*appledger.WagesResponse, error)
	PeekInvoiceNumber(ctx context.Context, date string) (*appledger.InvoiceNumberResponse, error)
}

// Projects creates and reads construction projects
type Projects interface {
	Create(ctx context.Context, req appledger.CreateProjectRequest) (*appledger.ProjectResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*appledger.ProjectResponse, error)
	List(ctx context.Context) ([]appledger.ProjectResponse, error)
}

// LedgerHandler serves the recording endpoints of every venture
type LedgerHandler struct {
	BaseHandler
	recorder Recorder
	projects Projects
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(recorder Recorder, projects Projects) *LedgerHandler {
	return &LedgerHandler{recorder: recorder, projects: projects}
}

// InvoiceQuery selects the issue date to preview
type InvoiceQuery struct {
	Date string `form:"date" binding:"omitempty,isodate"`
}

// MonthFilter selects a month of rows
type MonthFilter struct {
	Month string `form:"month" binding:"required,yearmonth"`
}

// CreateProject godoc
// @ID           createConstructionProject
// @Summary      Create a construction project
// @Tags         construction
// @Accept       json
// @Produce      json
// @Param        request body appledger.CreateProjectRequest true "Project"
// @Success      201 {object} APIResponse[appledger.ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /construction/projects [post]
func (h *LedgerHandler) CreateProject(c *gin.Context) {
	var req appledger.CreateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetProject godoc
// @ID           getConstructionProject
// @Summary      Get a construction project
// @Tags         construction
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[appledger.ProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /construction/projects/{id} [get]
func (h *LedgerHandler) GetProject(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListProjects godoc
// @ID           listConstructionProjects
// @Summary      List construction projects by name
// @Tags         construction
// @Produce      json
// @Success      200 {object} APIResponse[[]appledger.ProjectResponse]
// @Router       /construction/projects [get]
func (h *LedgerHandler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, projects, len(projects))
}

// RecordMaterials godoc
// @ID           recordConstructionMaterials
// @Summary      Record a materials batch under one invoice number
// @Tags         construction
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client supplied key for safe retries"
// @Param        request body appledger.RecordMaterialsRequest true "Materials batch"
// @Success      201 {object} APIResponse[appledger.BatchResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /construction/materials [post]
func (h *LedgerHandler) RecordMaterials(c *gin.Context) {
	var req appledger.RecordMaterialsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	h.batchResult(c)(h.recorder.RecordMaterials(c.Request.Context(), actor, req))
}

// RecordLabor godoc
// @ID           recordConstructionLabor
// @Summary      Record a labor batch under one invoice number
// @Tags         construction
// @Router       /construction/labor [post]
func (h *LedgerHandler) RecordLabor(c *gin.Context) {
	var req appledger.RecordLaborRequest
	if !h.bindJSON(c, &req) {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	h.batchResult(c)(h.recorder.RecordLabor(c.Request.Context(), actor, req))
}

// RecordAmounts returns the handler for the gasoline, documents and
// obligations batches, which share a request shape.
func (h *LedgerHandler) RecordAmounts(kind string) gin.HandlerFunc {
	record := map[string]func(context.Context, uuid.UUID, appledger.RecordAmountsRequest) (*appledger.BatchResponse, error){
		"gasoline":    h.recorder.RecordGasoline,
		"documents":   h.recorder.RecordDocuments,
		"obligations": h.recorder.RecordObligations,
	}[kind]
	if record == nil {
		panic("unknown amount batch kind: " + kind)
	}

	return func(c *gin.Context) {
		var req appledger.RecordAmountsRequest
		if !h.bindJSON(c, &req) {
			return
		}
		actor, ok := h.actor(c)
		if !ok {
			return
		}
		h.batchResult(c)(record(c.Request.Context(), actor, req))
	}
}

// PeekInvoiceNumber godoc
// @ID           peekInvoiceNumber
// @Summary      Preview the next invoice number for an issue date
// @Description  Read only; a concurrent save may take the previewed number first
// @Tags         construction
// @Produce      json
// @Param        date query string false "Issue date (YYYY-MM-DD), default today"
// @Success      200 {object} APIResponse[appledger.InvoiceNumberResponse]
// @Router       /construction/invoice-numbers/next [get]
func (h *LedgerHandler) PeekInvoiceNumber(c *gin.Context) {
	var q InvoiceQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.recorder.PeekInvoiceNumber(c.Request.Context(), q.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordEntries returns the batch handler for venture level rows: carenderia
// transactions and catering expenses.
func (h *LedgerHandler) RecordEntries(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appledger.RecordEntriesRequest
		if !h.bindJSON(c, &req) {
			return
		}
		actor, ok := h.actor(c)
		if !ok {
			return
		}
		h.batchResult(c)(h.recorder.RecordEntries(c.Request.Context(), actor, venture, req))
	}
}

// ListEntries returns the month listing handler for a venture
func (h *LedgerHandler) ListEntries(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q MonthFilter
		if !h.bindQuery(c, &q) {
			return
		}
		rows, err := h.recorder.ListEntries(c.Request.Context(), venture, q.Month)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.SuccessList(c, rows, len(rows))
	}
}

// UpdateEntry returns the single row edit handler for a venture
func (h *LedgerHandler) UpdateEntry(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c)
		if !ok {
			return
		}
		var req appledger.UpdateEntryRequest
		if !h.bindJSON(c, &req) {
			return
		}
		resp, err := h.recorder.UpdateEntry(c.Request.Context(), venture, id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}

// DeleteEntry returns the single row delete handler for a venture
func (h *LedgerHandler) DeleteEntry(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c)
		if !ok {
			return
		}
		if err := h.recorder.DeleteEntry(c.Request.Context(), venture, id); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	}
}

// RecordWages returns the wages handler for a venture
func (h *LedgerHandler) RecordWages(venture ledger.Venture) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appledger.RecordWagesRequest
		if !h.bindJSON(c, &req) {
			return
		}
		actor, ok := h.actor(c)
		if !ok {
			return
		}
		resp, err := h.recorder.RecordWages(c.Request.Context(), actor, venture, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Created(c, resp)
	}
}

func (h *LedgerHandler) batchResult(c *gin.Context) func(*appledger.BatchResponse, error) {
	return func(resp *appledger.BatchResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Created(c, resp)
	}
}
