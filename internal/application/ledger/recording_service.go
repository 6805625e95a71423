package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RecordingService records expense batches, venture transactions and wages.
// Every save that spans several rows runs in a single transaction.
type RecordingService struct {
	scope    TransactionScope
	entries  ledger.EntryRepository
	projects construction.ProjectRepository
	sequence ledger.InvoiceSequence
	logger   *zap.Logger
	now      func() time.Time
}

// NewRecordingService creates a new RecordingService.
// sequence is only used for previews; issued numbers always come from the transaction scope.
func NewRecordingService(
	scope TransactionScope,
	entries ledger.EntryRepository,
	projects construction.ProjectRepository,
	sequence ledger.InvoiceSequence,
	logger *zap.Logger,
) *RecordingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordingService{
		scope:    scope,
		entries:  entries,
		projects: projects,
		sequence: sequence,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the time source used for issue dates
func (s *RecordingService) SetClock(now func() time.Time) {
	s.now = now
}

// RecordMaterials records a materials batch under one invoice number
func (s *RecordingService) RecordMaterials(ctx context.Context, actor uuid.UUID, req RecordMaterialsRequest) (*BatchResponse, error) {
	lines := make([]construction.Line, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = construction.MaterialLine{
			Item:      l.Item,
			Quantity:  l.Quantity,
			Unit:      l.Unit,
			UnitPrice: l.UnitPrice,
			Amount:    l.Amount,
		}
	}
	return s.recordBatch(ctx, actor, construction.KindMaterials, req.BatchHeader, lines)
}

// RecordLabor records a labor batch under one invoice number
func (s *RecordingService) RecordLabor(ctx context.Context, actor uuid.UUID, req RecordLaborRequest) (*BatchResponse, error) {
	lines := make([]construction.Line, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = construction.LaborLine{
			EmployeeID:    l.EmployeeID,
			EmployeeName:  l.EmployeeName,
			RatePerDay:    l.RatePerDay,
			Days:          l.Days,
			OvertimeHours: l.OvertimeHours,
			Charge:        l.Charge,
		}
	}
	return s.recordBatch(ctx, actor, construction.KindLabor, req.BatchHeader, lines)
}

// RecordGasoline records a gasoline batch under one invoice number
func (s *RecordingService) RecordGasoline(ctx context.Context, actor uuid.UUID, req RecordAmountsRequest) (*BatchResponse, error) {
	return s.recordBatch(ctx, actor, construction.KindGasoline, req.BatchHeader, amountLines(req.Lines))
}

// RecordDocuments records a documents batch under one invoice number
func (s *RecordingService) RecordDocuments(ctx context.Context, actor uuid.UUID, req RecordAmountsRequest) (*BatchResponse, error) {
	return s.recordBatch(ctx, actor, construction.KindDocuments, req.BatchHeader, amountLines(req.Lines))
}

// RecordObligations records an obligations batch under one invoice number
func (s *RecordingService) RecordObligations(ctx context.Context, actor uuid.UUID, req RecordAmountsRequest) (*BatchResponse, error) {
	return s.recordBatch(ctx, actor, construction.KindObligations, req.BatchHeader, amountLines(req.Lines))
}

func amountLines(in []AmountLineRequest) []construction.Line {
	lines := make([]construction.Line, len(in))
	for i, l := range in {
		lines[i] = construction.AmountLine{
			Amount:      l.Amount,
			Reference:   l.Reference,
			Description: l.Description,
		}
	}
	return lines
}

// recordBatch validates the whole batch before opening the transaction, then
// draws one invoice number and inserts every row stamped with it.
func (s *RecordingService) recordBatch(ctx context.Context, actor uuid.UUID, kind construction.ExpenseKind, header BatchHeader, lines []construction.Line) (*BatchResponse, error) {
	expenseDate, err := shared.ParseDate(header.ExpenseDate)
	if err != nil {
		return nil, err
	}
	issueDay, err := s.issueDay(header.InvoiceDate)
	if err != nil {
		return nil, err
	}

	batch := construction.Batch{
		Kind:        kind,
		ProjectID:   header.ProjectID,
		ExpenseDate: expenseDate,
		Lines:       lines,
	}
	entries, err := batch.Entries()
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, header.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.Status.AcceptsExpenses() {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("project %s is %s and no longer accepts expenses", project.ProjectName, project.Status))
	}

	for _, e := range entries {
		e.SetCreatedBy(actor)
	}

	var number ledger.InvoiceNumber
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		n, err := repos.InvoiceSequence().Next(ctx, issueDay)
		if err != nil {
			return err
		}
		for _, e := range entries {
			e.StampInvoice(n)
		}
		if err := repos.EntryRepo().SaveBatch(ctx, entries); err != nil {
			return err
		}
		number = n
		return nil
	})
	if err != nil {
		s.logger.Warn("construction batch rolled back",
			zap.String("kind", string(kind)),
			zap.String("project_id", header.ProjectID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("construction batch recorded",
		zap.String("kind", string(kind)),
		zap.String("project_id", header.ProjectID.String()),
		zap.String("invoice_number", number.String()),
		zap.Int("lines", len(entries)))
	return toBatchResponse(&number, entries), nil
}

// RecordEntries records a batch of dated, categorized rows for a venture.
// The whole batch is validated first; one bad row rejects all of them.
func (s *RecordingService) RecordEntries(ctx context.Context, actor uuid.UUID, venture ledger.Venture, req RecordEntriesRequest) (*BatchResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewValidationError("at least one line is required")
	}
	entries := make([]*ledger.Entry, 0, len(req.Lines))
	for i, l := range req.Lines {
		e, err := s.newVentureEntry(venture, l)
		if err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("line %d: %s", i+1, err.Error()))
		}
		e.SetCreatedBy(actor)
		entries = append(entries, e)
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.EntryRepo().SaveBatch(ctx, entries)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("venture entries recorded",
		zap.String("venture", venture.String()),
		zap.Int("lines", len(entries)))
	return toBatchResponse(nil, entries), nil
}

func (s *RecordingService) newVentureEntry(venture ledger.Venture, l EntryLineRequest) (*ledger.Entry, error) {
	date, err := shared.ParseDate(l.Date)
	if err != nil {
		return nil, err
	}
	category, ok := ledger.ParseCategory(l.Category)
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown category %q", l.Category))
	}
	if !venture.AllowsCategory(category) {
		return nil, shared.NewValidationError(fmt.Sprintf("%s cannot be recorded for %s", category.DisplayName(), venture))
	}
	if !l.Amount.IsPositive() {
		return nil, shared.NewValidationError("amount must be positive")
	}
	e, err := ledger.NewEntry(ledger.VentureOwner(venture), category, l.Amount, date, l.Description)
	if err != nil {
		return nil, err
	}
	e.Reference = l.Reference
	return e, nil
}

// ListEntries returns the venture-level rows of a month, newest first
func (s *RecordingService) ListEntries(ctx context.Context, venture ledger.Venture, month string) ([]EntryResponse, error) {
	year, m, err := shared.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	from, to := shared.MonthBounds(year, m)
	rows, err := s.entries.Find(ctx, ledger.EntryFilter{
		Venture:    venture,
		From:       &from,
		To:         &to,
		Descending: true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]EntryResponse, len(rows))
	for i := range rows {
		out[i] = ToEntryResponse(&rows[i])
	}
	return out, nil
}

// UpdateEntry edits a single row. Construction rows are revised line by
// line so derived amounts follow their inputs.
func (s *RecordingService) UpdateEntry(ctx context.Context, venture ledger.Venture, id uuid.UUID, req UpdateEntryRequest) (*EntryResponse, error) {
	e, err := s.findVentureEntry(ctx, venture, id)
	if err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if venture == ledger.VentureConstruction {
		if req.Category != "" {
			if category, ok := ledger.ParseCategory(req.Category); !ok || category != e.Category {
				return nil, shared.NewValidationError("construction rows keep their expense type")
			}
		}
		if req.Amount.IsNegative() {
			return nil, shared.NewValidationError("amount cannot be negative")
		}
		if err := construction.Revise(e, req.revision(date)); err != nil {
			return nil, err
		}
	} else {
		category, ok := ledger.ParseCategory(req.Category)
		if !ok || !venture.AllowsCategory(category) {
			return nil, shared.NewValidationError(fmt.Sprintf("category %q cannot be recorded for %s", req.Category, venture))
		}
		if !req.Amount.IsPositive() {
			return nil, shared.NewValidationError("amount must be positive")
		}
		if err := e.Update(category, req.Amount, date); err != nil {
			return nil, err
		}
	}

	if err := s.entries.Save(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("venture entry updated",
		zap.String("venture", venture.String()),
		zap.String("entry_id", id.String()),
		zap.String("amount", e.Amount.StringFixed(2)),
	)
	resp := ToEntryResponse(e)
	return &resp, nil
}

// DeleteEntry removes a single row
func (s *RecordingService) DeleteEntry(ctx context.Context, venture ledger.Venture, id uuid.UUID) error {
	if _, err := s.findVentureEntry(ctx, venture, id); err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("venture entry deleted", zap.String("venture", venture.String()), zap.String("entry_id", id.String()))
	return nil
}

// findVentureEntry loads an entry of venture. Construction rows belong to a
// project; rows of other ventures that point at a booking are payments and
// change only through the booking.
func (s *RecordingService) findVentureEntry(ctx context.Context, venture ledger.Venture, id uuid.UUID) (*ledger.Entry, error) {
	e, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Owner.Venture != venture {
		return nil, shared.ErrNotFound
	}
	if (venture == ledger.VentureConstruction) != (e.Owner.RefID != nil) {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

// RecordWages stores one day's wage lines. For catering the day's total is
// also booked as a single Wages ledger row in the same transaction; other
// ventures report wage lines separately.
func (s *RecordingService) RecordWages(ctx context.Context, actor uuid.UUID, venture ledger.Venture, req RecordWagesRequest) (*WagesResponse, error) {
	if venture == ledger.VentureConstruction {
		return nil, shared.NewValidationError("construction wages are recorded as labor batches")
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, shared.NewValidationError("at least one line is required")
	}

	lines := make([]*ledger.WageLine, 0, len(req.Lines))
	total := decimal.Zero
	for i, l := range req.Lines {
		line, err := ledger.NewWageLine(venture, date, l.EmployeeID, l.EmployeeName, l.RatePerDay, l.Days, l.Amount)
		if err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("line %d: %s", i+1, err.Error()))
		}
		line.Role = l.Role
		if actor != uuid.Nil {
			id := actor
			line.CreatedBy = &id
		}
		lines = append(lines, line)
		total = total.Add(line.Amount)
	}

	var wagesEntry *ledger.Entry
	if venture == ledger.VentureCatering {
		wagesEntry, err = ledger.NewEntry(ledger.VentureOwner(venture), ledger.CategoryWages, total, date, "Wages")
		if err != nil {
			return nil, err
		}
		wagesEntry.SetCreatedBy(actor)
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.WageRepo().SaveBatch(ctx, lines); err != nil {
			return err
		}
		if wagesEntry != nil {
			return repos.EntryRepo().SaveBatch(ctx, []*ledger.Entry{wagesEntry})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("wages recorded",
		zap.String("venture", venture.String()),
		zap.String("date", req.Date),
		zap.Int("lines", len(lines)),
		zap.String("total", total.StringFixed(2)))

	resp := &WagesResponse{
		Count: len(lines),
		Total: total,
		Lines: make([]WageLineResponse, len(lines)),
	}
	for i, l := range lines {
		resp.Lines[i] = toWageLineResponse(l)
	}
	if wagesEntry != nil {
		er := ToEntryResponse(wagesEntry)
		resp.LedgerEntry = &er
	}
	return resp, nil
}

// PeekInvoiceNumber previews the next invoice number of a day without reserving it
func (s *RecordingService) PeekInvoiceNumber(ctx context.Context, date string) (*InvoiceNumberResponse, error) {
	day, err := s.issueDay(date)
	if err != nil {
		return nil, err
	}
	n, err := s.sequence.Peek(ctx, day)
	if err != nil {
		return nil, err
	}
	return &InvoiceNumberResponse{InvoiceNumber: n.String(), Date: day.Format(shared.DateLayout)}, nil
}

// issueDay parses an optional YYYY-MM-DD, defaulting to today
func (s *RecordingService) issueDay(date string) (time.Time, error) {
	if date == "" {
		return shared.DayOf(s.now()), nil
	}
	return shared.ParseDate(date)
}
