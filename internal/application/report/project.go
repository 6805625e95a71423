package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const allProjects = "All Projects"

// ProjectBalanceSheet returns each project's contract price against its
// expense totals by type, plus the overall summary. A nil projectID covers
// every project.
func (s *Service) ProjectBalanceSheet(ctx context.Context, projectID *uuid.UUID) (*ProjectBalanceSheetResponse, error) {
	return s.projectBalanceSheet(ctx, projectID, shared.DayOf(s.now()))
}

// projectBalanceSheet counts expenses dated up to and including through
func (s *Service) projectBalanceSheet(ctx context.Context, projectID *uuid.UUID, through time.Time) (*ProjectBalanceSheetResponse, error) {
	var projects []construction.Project
	var rows []ledger.Entry

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if projectID != nil {
			p, err := s.projects.FindByID(gctx, *projectID)
			if err != nil {
				return err
			}
			projects = []construction.Project{*p}
			return nil
		}
		var err error
		projects, err = s.projects.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.entries.Find(gctx, ledger.EntryFilter{
			Venture:    ledger.VentureConstruction,
			RefID:      projectID,
			Categories: expenseCategories(),
			To:         &through,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byProject := make(map[uuid.UUID][]ledger.Entry)
	for _, r := range rows {
		if r.Owner.RefID != nil {
			byProject[*r.Owner.RefID] = append(byProject[*r.Owner.RefID], r)
		}
	}

	resp := &ProjectBalanceSheetResponse{
		Scope:    allProjects,
		AsOf:     through.Format(shared.DateLayout),
		Columns:  expenseLabels(),
		Projects: make([]ProjectBalanceRow, 0, len(projects)),
	}
	if projectID != nil && len(projects) == 1 {
		resp.Scope = projects[0].ProjectName
	}

	balances := make([]*construction.ProjectBalance, 0, len(projects))
	for i := range projects {
		b, err := construction.NewProjectBalance(&projects[i], byProject[projects[i].ID])
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
		resp.Projects = append(resp.Projects, toBalanceRow(b))
	}
	sum := construction.Summarize(balances)
	resp.Summary = BalanceSummary{ContractTotal: sum.ContractTotal, ExpenseTotal: sum.ExpenseTotal, Balance: sum.Balance}
	return resp, nil
}

// ProjectOverview returns a project's balance and its expense rows, newest first
func (s *Service) ProjectOverview(ctx context.Context, projectID uuid.UUID) (*ProjectOverviewResponse, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rows, err := s.entries.Find(ctx, ledger.EntryFilter{
		Venture:    ledger.VentureConstruction,
		RefID:      &projectID,
		Categories: expenseCategories(),
		Descending: true,
	})
	if err != nil {
		return nil, err
	}
	b, err := construction.NewProjectBalance(p, rows)
	if err != nil {
		return nil, err
	}

	resp := &ProjectOverviewResponse{
		ProjectBalanceRow: toBalanceRow(b),
		ProjectSite:       p.ProjectSite,
		Status:            string(p.Status),
		Expenses:          make([]ProjectExpenseView, 0, len(rows)),
	}
	for i := range rows {
		r := &rows[i]
		kind, _ := construction.KindOf(r.Category)
		view := ProjectExpenseView{
			ID:          r.ID.String(),
			Date:        r.Date.Format(shared.DateLayout),
			Kind:        string(kind),
			Label:       r.Category.DisplayName(),
			Amount:      r.Amount,
			Description: r.Description,
			Reference:   r.Reference,
		}
		if r.InvoiceNumber != nil {
			view.InvoiceNumber = r.InvoiceNumber.String()
		}
		resp.Expenses = append(resp.Expenses, view)
	}
	return resp, nil
}

// ExportProjectBalanceSheet renders the construction balance sheet as of
// today to PDF and archives it when an archiver is set
func (s *Service) ExportProjectBalanceSheet(ctx context.Context, projectID *uuid.UUID) (*ExportResult, error) {
	today := shared.DayOf(s.now())
	scope := "all"
	if projectID != nil {
		scope = projectID.String()
	}
	name := fmt.Sprintf("construction-balance-sheet-%s-%s.pdf", scope, today.Format(shared.DateLayout))
	res, err := s.exportProjectBalanceSheetPDF(ctx, projectID, today, name)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, ledger.VentureConstruction, today.Format("2006-01"), res)
	s.logger.Info("project balance sheet exported", zap.String("scope", scope), zap.Int("bytes", len(res.Data)))
	return res, nil
}

func (s *Service) exportProjectBalanceSheetPDF(ctx context.Context, projectID *uuid.UUID, through time.Time, filename string) (*ExportResult, error) {
	if s.pdf == nil {
		return nil, shared.NewValidationError("PDF export is not configured")
	}
	bs, err := s.projectBalanceSheet(ctx, projectID, through)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.RenderProjectBalanceSheet(ctx, bs)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Filename: filename, ContentType: contentTypePDF, Data: data}, nil
}

func toBalanceRow(b *construction.ProjectBalance) ProjectBalanceRow {
	row := ProjectBalanceRow{
		ProjectID:      b.Project.ID.String(),
		ProjectName:    b.Project.ProjectName,
		ContractorName: b.Project.ContractorName,
		ContractPrice:  b.Project.ContractPrice,
		Totals:         make([]ExpenseTotal, 0, len(construction.Kinds())),
		TotalExpenses:  b.TotalExpenses,
		Balance:        b.Balance,
	}
	for _, k := range construction.Kinds() {
		row.Totals = append(row.Totals, ExpenseTotal{
			Kind:   string(k),
			Label:  k.Category().DisplayName(),
			Amount: b.Total(k),
		})
	}
	return row
}

func expenseCategories() []ledger.Category {
	kinds := construction.Kinds()
	out := make([]ledger.Category, len(kinds))
	for i, k := range kinds {
		out[i] = k.Category()
	}
	return out
}

func expenseLabels() []string {
	kinds := construction.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.Category().DisplayName()
	}
	return out
}
