package construction

import (
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/ledger"
)

// Kinds returns the expense kinds in balance sheet column order
func Kinds() []ExpenseKind {
	return []ExpenseKind{KindMaterials, KindLabor, KindGasoline, KindDocuments, KindObligations}
}

// ProjectBalance is a project's contract price against its recorded expenses
type ProjectBalance struct {
	Project       *Project
	Totals        map[ExpenseKind]decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// Total returns the expense total of a kind, zero when nothing was recorded
func (b *ProjectBalance) Total(k ExpenseKind) decimal.Decimal {
	if v, ok := b.Totals[k]; ok {
		return v
	}
	return decimal.Zero
}

// NewProjectBalance sums the expense rows of p by kind. Rows of other
// projects and rows outside the five expense kinds are skipped.
func NewProjectBalance(p *Project, rows []ledger.Entry) (*ProjectBalance, error) {
	own := make([]ledger.Entry, 0, len(rows))
	for _, r := range rows {
		if r.Owner.RefID != nil && *r.Owner.RefID == p.ID {
			own = append(own, r)
		}
	}
	sums, err := ledger.SumByCategory(own)
	if err != nil {
		return nil, err
	}

	b := &ProjectBalance{
		Project:       p,
		Totals:        make(map[ExpenseKind]decimal.Decimal, len(Kinds())),
		TotalExpenses: decimal.Zero,
	}
	for _, k := range Kinds() {
		total := sums[k.Category()]
		b.Totals[k] = total
		b.TotalExpenses = b.TotalExpenses.Add(total)
	}
	b.Balance = p.ContractPrice.Sub(b.TotalExpenses)
	return b, nil
}

// BalanceSummary totals several project balances
type BalanceSummary struct {
	ContractTotal decimal.Decimal
	ExpenseTotal  decimal.Decimal
	Balance       decimal.Decimal
}

// Summarize adds up contract prices and expenses of balances
func Summarize(balances []*ProjectBalance) BalanceSummary {
	s := BalanceSummary{ContractTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, b := range balances {
		s.ContractTotal = s.ContractTotal.Add(b.Project.ContractPrice)
		s.ExpenseTotal = s.ExpenseTotal.Add(b.TotalExpenses)
	}
	s.Balance = s.ContractTotal.Sub(s.ExpenseTotal)
	return s
}
