package report

import (
	"github.com/shopspring/decimal"
)

// Report kinds that can be exported
const (
	KindTrialBalance = "trial-balance"
	KindBalanceSheet = "balance-sheet"
)

// Export formats
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// MonthQuery selects a venture month
type MonthQuery struct {
	Month string `form:"month" binding:"required,yearmonth"`
}

// ExportQuery selects a report export
type ExportQuery struct {
	Month  string `form:"month" binding:"required,yearmonth"`
	Format string `form:"format" binding:"omitempty,oneof=pdf xlsx"`
}

// Column is one category column of the trial balance
type Column struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Bucket   string `json:"bucket"`
}

// TrialBalanceDay is one row of the trial balance.
// Amounts are aligned with TrialBalanceResponse.Columns.
type TrialBalanceDay struct {
	Date            string            `json:"date"`
	Amounts         []decimal.Decimal `json:"amounts"`
	TotalIncome     decimal.Decimal   `json:"total_income"`
	TotalDeductions decimal.Decimal   `json:"total_deductions"`
	Net             decimal.Decimal   `json:"net"`
}

// TrialBalanceResponse is a month's per-day, per-category sums, oldest day first
type TrialBalanceResponse struct {
	Venture         string            `json:"venture"`
	VentureLabel    string            `json:"venture_label"`
	Month           string            `json:"month"`
	MonthLabel      string            `json:"month_label"`
	From            string            `json:"from"`
	To              string            `json:"to"`
	Columns         []Column          `json:"columns"`
	Days            []TrialBalanceDay `json:"days"`
	Totals          []decimal.Decimal `json:"totals"`
	TotalIncome     decimal.Decimal   `json:"total_income"`
	TotalDeductions decimal.Decimal   `json:"total_deductions"`
	Net             decimal.Decimal   `json:"net"`
}

// BalanceSheetRow is one day of the balance sheet
type BalanceSheetRow struct {
	Date     string          `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Wages    decimal.Decimal `json:"wages"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// BalanceSheetResponse is income against wages and other expenses, newest day first
type BalanceSheetResponse struct {
	Venture       string            `json:"venture"`
	VentureLabel  string            `json:"venture_label"`
	Month         string            `json:"month"`
	MonthLabel    string            `json:"month_label"`
	Rows          []BalanceSheetRow `json:"rows"`
	TotalIncome   decimal.Decimal   `json:"total_income"`
	TotalWages    decimal.Decimal   `json:"total_wages"`
	TotalExpenses decimal.Decimal   `json:"total_expenses"`
	Net           decimal.Decimal   `json:"net"`
}

// WageLineView is one wage line in the wages report
type WageLineView struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Role         string          `json:"role,omitempty"`
	RatePerDay   decimal.Decimal `json:"rate_per_day"`
	Days         decimal.Decimal `json:"days"`
	Amount       decimal.Decimal `json:"amount"`
}

// WageDayView groups the wage lines of a day
type WageDayView struct {
	Date  string          `json:"date"`
	Lines []WageLineView  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// WagesReportResponse is a month of wage lines, newest day first
type WagesReportResponse struct {
	Venture string          `json:"venture"`
	Month   string          `json:"month"`
	Days    []WageDayView   `json:"days"`
	Total   decimal.Decimal `json:"total"`
}

// MonthOption is a month with recorded rows
type MonthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ExportResult is a rendered report file
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
	// ArchiveKey is set when the file was archived
	ArchiveKey string
}

// ProjectBalanceQuery narrows the construction balance sheet to one project
type ProjectBalanceQuery struct {
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
}

// ExpenseTotal is one expense type column of a project balance
type ExpenseTotal struct {
	Kind   string          `json:"kind"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ProjectBalanceRow is a project's contract price against its expenses.
// Totals follow ProjectBalanceSheetResponse.Columns.
type ProjectBalanceRow struct {
	ProjectID      string          `json:"project_id"`
	ProjectName    string          `json:"project_name"`
	ContractorName string          `json:"contractor_name"`
	ContractPrice  decimal.Decimal `json:"contract_price"`
	Totals         []ExpenseTotal  `json:"totals"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	Balance        decimal.Decimal `json:"balance"`
}

// BalanceSummary totals the rows of a project balance sheet
type BalanceSummary struct {
	ContractTotal decimal.Decimal `json:"overall_contract_total"`
	ExpenseTotal  decimal.Decimal `json:"overall_expense_total"`
	Balance       decimal.Decimal `json:"overall_balance"`
}

// ProjectBalanceSheetResponse is the construction balance sheet of one or all projects
type ProjectBalanceSheetResponse struct {
	// Scope is the project name, or "All Projects"
	Scope    string              `json:"scope"`
	AsOf     string              `json:"as_of"`
	Columns  []string            `json:"columns"`
	Projects []ProjectBalanceRow `json:"projects"`
	Summary  BalanceSummary      `json:"summary"`
}

// ProjectExpenseView is one recorded expense row of a project
type ProjectExpenseView struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Kind          string          `json:"kind"`
	Label         string          `json:"label"`
	Amount        decimal.Decimal `json:"amount"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Description   string          `json:"description,omitempty"`
	Reference     string          `json:"reference,omitempty"`
}

// ProjectOverviewResponse is a project's balance and its expenses, newest first
type ProjectOverviewResponse struct {
	ProjectBalanceRow
	ProjectSite string               `json:"project_site,omitempty"`
	Status      string               `json:"status"`
	Expenses    []ProjectExpenseView `json:"expenses"`
}
