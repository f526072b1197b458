package printing

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/report"
	"github.com/mfgerp/backend/internal/domain/treasury"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleSnapshot() *report.BalanceSheetSnapshot {
	return &report.BalanceSheetSnapshot{
		Assets: report.AssetsSection{
			Inventory:   decimal.RequireFromString("1234567.891"),
			Cash:        decimal.NewFromInt(500),
			Receivables: decimal.NewFromInt(200),
			Total:       decimal.RequireFromString("1235267.891"),
		},
		Liabilities: report.LiabilitiesSection{
			Payables: decimal.NewFromInt(100),
			Total:    decimal.NewFromInt(100),
		},
		NetPosition:   decimal.RequireFromString("1235167.891"),
		CoverageRatio: 1235268,
		InventoryBreakdown: []report.InventoryCategoryBreakdown{
			{Category: inventory.CategoryRawMaterial, Label: "Raw Materials", Count: 2, Value: decimal.RequireFromString("1234567.891")},
			{Category: inventory.CategoryFinishedGood, Label: "Finished Goods", Count: 0, Value: decimal.Zero},
		},
		TreasuryBreakdown: []report.TreasuryAccountBreakdown{
			{ID: uuid.New(), Name: "Main bank", Type: treasury.AccountTypeBank, Balance: decimal.NewFromInt(600)},
			{ID: uuid.New(), Name: "Cash box", Type: treasury.AccountTypeCash, Balance: decimal.NewFromInt(-100)},
		},
		TopReceivables:    []report.CounterpartyBalance{{Name: "Retailer <A&B>", Balance: decimal.NewFromInt(200)}},
		CustomersWithDebt: 1,
		SuppliersWeOwe:    0,
		InventoryWarnings: []inventory.Category{inventory.CategoryPackagingMaterial},
		GeneratedAt:       time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestBalanceSheetTemplate_Render(t *testing.T) {
	tmpl := NewBalanceSheetTemplate(WithCompanyName("Acme Plastics"), WithCurrencySymbol("$"))

	html, err := tmpl.Render(sampleSnapshot())
	require.NoError(t, err)

	assert.Contains(t, html, "Acme Plastics")
	assert.Contains(t, html, "Generated 2024-03-01 12:30 UTC")
	assert.Contains(t, html, "$1,234,567.89")
	assert.Contains(t, html, "$-100.00")
	assert.Contains(t, html, "Packaging Materials")
	assert.Contains(t, html, "Bank")
	assert.Contains(t, html, "Positive")
	assert.Contains(t, html, "No open payables")
	assert.Contains(t, html, "Retailer &lt;A&amp;B&gt;", "party names are HTML escaped")
}

func TestBalanceSheetTemplate_Locale(t *testing.T) {
	tmpl := NewBalanceSheetTemplate(WithLanguage(language.German))

	html, err := tmpl.Render(sampleSnapshot())
	require.NoError(t, err)

	assert.Contains(t, html, "1.234.567,89")
}

func TestBalanceSheetTemplate_Location(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	tmpl := NewBalanceSheetTemplate(WithLocation(loc))

	html, err := tmpl.Render(sampleSnapshot())
	require.NoError(t, err)

	assert.Contains(t, html, "2024-03-01 20:30 UTC+8")
}

func TestBalanceSheetTemplate_NoWarningsBlock(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.InventoryWarnings = nil

	html, err := NewBalanceSheetTemplate().Render(snapshot)
	require.NoError(t, err)

	assert.NotContains(t, html, "could not be read")
}

func TestBalanceSheetTemplate_NilSnapshot(t *testing.T) {
	_, err := NewBalanceSheetTemplate().Render(nil)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func TestBalanceSheetTemplate_ConcurrentRender(t *testing.T) {
	tmpl := NewBalanceSheetTemplate()
	snapshot := sampleSnapshot()

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			html, err := tmpl.Render(snapshot)
			assert.NoError(t, err)
			results[i] = html
		}(i)
	}
	wg.Wait()

	for _, html := range results[1:] {
		assert.Equal(t, results[0], html)
	}
}
