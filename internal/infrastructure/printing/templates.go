package printing

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	TemplateTrialBalance        = "trial_balance"
	TemplateBalanceSheet        = "balance_sheet"
	TemplateProjectBalanceSheet = "project_balance_sheet"
)

// reportPage is the data every report template receives
type reportPage struct {
	Company  string
	Address  string
	Title    string
	Subtitle string
	Report   any
}

// TemplateEngine executes the embedded report templates
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses the embedded templates
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("reports").Funcs(template.FuncMap{
		"money":    FormatMoney,
		"dayLabel": dayLabel,
		"add":      func(a, b int) int { return a + b },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplate, "parse report templates", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// Execute renders the named template to HTML
func (e *TemplateEngine) Execute(name string, data reportPage) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "execute template "+name, err)
	}
	return buf.String(), nil
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with two decimals and thousands separators, e.g. 1,234,567.50
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// beyond int64; leave ungrouped
		return d.StringFixed(2)
	}

	out := moneyPrinter.Sprintf("%d", n) + "." + frac
	if d.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}

// dayLabel turns 2026-02-06 into "Feb 06, 2026 (Fri)"
func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006 (Mon)")
}
