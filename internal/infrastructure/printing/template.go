package printing

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/mfgerp/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/balance_sheet.html
var balanceSheetHTML string

// BalanceSheetTemplate renders a snapshot as a self-contained printable page
type BalanceSheetTemplate struct {
	tmpl           *template.Template
	lang           language.Tag
	currencySymbol string
	location       *time.Location
	companyName    string
}

// TemplateOption configures the balance sheet template
type TemplateOption func(*BalanceSheetTemplate)

// WithLanguage sets the locale used for number grouping and title casing
func WithLanguage(tag language.Tag) TemplateOption {
	return func(t *BalanceSheetTemplate) {
		t.lang = tag
	}
}

// WithCurrencySymbol prefixes every amount with symbol
func WithCurrencySymbol(symbol string) TemplateOption {
	return func(t *BalanceSheetTemplate) {
		t.currencySymbol = symbol
	}
}

// WithLocation sets the time zone the generation time is printed in
func WithLocation(loc *time.Location) TemplateOption {
	return func(t *BalanceSheetTemplate) {
		if loc != nil {
			t.location = loc
		}
	}
}

// WithCompanyName prints name in the page heading
func WithCompanyName(name string) TemplateOption {
	return func(t *BalanceSheetTemplate) {
		t.companyName = name
	}
}

// NewBalanceSheetTemplate parses the embedded page template
func NewBalanceSheetTemplate(opts ...TemplateOption) *BalanceSheetTemplate {
	t := &BalanceSheetTemplate{
		lang:     language.English,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.tmpl = template.Must(template.New("balance_sheet").Funcs(template.FuncMap{
		"money":    t.formatMoney,
		"count":    t.formatCount,
		"percent":  t.formatPercent,
		"title":    t.titleCase,
		"datetime": t.formatDateTime,
		"negative": func(d decimal.Decimal) bool { return d.IsNegative() },
	}).Parse(balanceSheetHTML))

	return t
}

// balanceSheetPage is the data handed to the page template
type balanceSheetPage struct {
	CompanyName string
	Status      string
	*report.BalanceSheetSnapshot
}

// Render produces the HTML document for snapshot
func (t *BalanceSheetTemplate) Render(snapshot *report.BalanceSheetSnapshot) (string, error) {
	if snapshot == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "balance sheet snapshot is nil", nil)
	}

	page := balanceSheetPage{
		CompanyName:          t.companyName,
		Status:               string(report.StatusOf(snapshot.NetPosition)),
		BalanceSheetSnapshot: snapshot,
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, page); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

// formatMoney groups thousands per locale and always prints two decimals.
// Example (English): 1234567.891 -> "1,234,567.89"
func (t *BalanceSheetTemplate) formatMoney(d decimal.Decimal) string {
	v := d.Round(2).InexactFloat64()
	return t.currencySymbol + message.NewPrinter(t.lang).Sprint(number.Decimal(v, number.Scale(2)))
}

// formatCount groups thousands per locale
func (t *BalanceSheetTemplate) formatCount(n any) string {
	return message.NewPrinter(t.lang).Sprint(number.Decimal(n))
}

// formatPercent prints an integer ratio as a percentage
func (t *BalanceSheetTemplate) formatPercent(n int64) string {
	return message.NewPrinter(t.lang).Sprintf("%d%%", n)
}

// titleCase builds a caser per call, a Caser must not be shared between goroutines
func (t *BalanceSheetTemplate) titleCase(v any) string {
	return cases.Title(t.lang).String(fmt.Sprint(v))
}

func (t *BalanceSheetTemplate) formatDateTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(t.location).Format("2006-01-02 15:04 MST")
}
