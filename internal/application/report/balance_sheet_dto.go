package report

import (
	"slices"
	"time"

	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// InventoryCategoryResponse represents one inventory category valuation
type InventoryCategoryResponse struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Count    int64   `json:"count"`
	Value    float64 `json:"value"`
	// Degraded marks a line valued at zero because its category could not be read
	Degraded bool `json:"degraded"`
}

// TreasuryAccountResponse represents one treasury account balance
type TreasuryAccountResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

// CounterpartyResponse represents a customer or supplier balance
type CounterpartyResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
	Phone   string  `json:"phone,omitempty"`
}

// AssetsResponse represents the asset side of the balance sheet
type AssetsResponse struct {
	Inventory   float64 `json:"inventory"`
	Cash        float64 `json:"cash"`
	Receivables float64 `json:"receivables"`
	Total       float64 `json:"total"`
}

// LiabilitiesResponse represents the liability side of the balance sheet
type LiabilitiesResponse struct {
	Payables float64 `json:"payables"`
	Total    float64 `json:"total"`
}

// BalanceSheetResponse represents the full balance sheet
type BalanceSheetResponse struct {
	Assets             AssetsResponse              `json:"assets"`
	Liabilities        LiabilitiesResponse         `json:"liabilities"`
	NetPosition        float64                     `json:"net_position"`
	CoverageRatio      int64                       `json:"coverage_ratio"`
	InventoryBreakdown []InventoryCategoryResponse `json:"inventory_breakdown"`
	TreasuryBreakdown  []TreasuryAccountResponse   `json:"treasury_breakdown"`
	TopReceivables     []CounterpartyResponse      `json:"top_receivables"`
	TopPayables        []CounterpartyResponse      `json:"top_payables"`
	CustomersWithDebt  int                         `json:"customers_with_debt"`
	SuppliersWeOwe     int                         `json:"suppliers_we_owe"`
	InventoryWarnings  []string                    `json:"inventory_warnings,omitempty"`
	GeneratedAt        time.Time                   `json:"generated_at"`
}

// QuickSummaryResponse represents the headline figures for dashboard tiles
type QuickSummaryResponse struct {
	NetPosition      float64 `json:"net_position"`
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	Status           string  `json:"status"`
}

// ToBalanceSheetResponse converts a domain snapshot to its response
func ToBalanceSheetResponse(s *report.BalanceSheetSnapshot) *BalanceSheetResponse {
	warnings := make([]string, len(s.InventoryWarnings))
	for i, c := range s.InventoryWarnings {
		warnings[i] = c.String()
	}

	return &BalanceSheetResponse{
		Assets: AssetsResponse{
			Inventory:   toFloat64(s.Assets.Inventory),
			Cash:        toFloat64(s.Assets.Cash),
			Receivables: toFloat64(s.Assets.Receivables),
			Total:       toFloat64(s.Assets.Total),
		},
		Liabilities: LiabilitiesResponse{
			Payables: toFloat64(s.Liabilities.Payables),
			Total:    toFloat64(s.Liabilities.Total),
		},
		NetPosition:        toFloat64(s.NetPosition),
		CoverageRatio:      s.CoverageRatio,
		InventoryBreakdown: toInventoryResponses(s.InventoryBreakdown, s.InventoryWarnings),
		TreasuryBreakdown:  toTreasuryResponses(s.TreasuryBreakdown),
		TopReceivables:     toCounterpartyResponses(s.TopReceivables),
		TopPayables:        toCounterpartyResponses(s.TopPayables),
		CustomersWithDebt:  s.CustomersWithDebt,
		SuppliersWeOwe:     s.SuppliersWeOwe,
		InventoryWarnings:  warnings,
		GeneratedAt:        s.GeneratedAt,
	}
}

// ToQuickSummaryResponse converts a domain quick summary to its response
func ToQuickSummaryResponse(q report.QuickSummary) *QuickSummaryResponse {
	return &QuickSummaryResponse{
		NetPosition:      toFloat64(q.NetPosition),
		TotalAssets:      toFloat64(q.TotalAssets),
		TotalLiabilities: toFloat64(q.TotalLiabilities),
		Status:           string(q.Status),
	}
}

func toInventoryResponses(lines []report.InventoryCategoryBreakdown, degraded []inventory.Category) []InventoryCategoryResponse {
	responses := make([]InventoryCategoryResponse, len(lines))
	for i, l := range lines {
		responses[i] = InventoryCategoryResponse{
			Category: l.Category.String(),
			Label:    l.Label,
			Count:    l.Count,
			Value:    toFloat64(l.Value),
			Degraded: slices.Contains(degraded, l.Category),
		}
	}
	return responses
}

func toTreasuryResponses(lines []report.TreasuryAccountBreakdown) []TreasuryAccountResponse {
	responses := make([]TreasuryAccountResponse, len(lines))
	for i, l := range lines {
		responses[i] = TreasuryAccountResponse{
			ID:      l.ID.String(),
			Name:    l.Name,
			Type:    string(l.Type),
			Balance: toFloat64(l.Balance),
		}
	}
	return responses
}

func toCounterpartyResponses(lines []report.CounterpartyBalance) []CounterpartyResponse {
	responses := make([]CounterpartyResponse, len(lines))
	for i, l := range lines {
		responses[i] = CounterpartyResponse{
			ID:      l.ID.String(),
			Name:    l.Name,
			Type:    string(l.Type),
			Balance: toFloat64(l.Balance),
		}
		if l.Phone != nil {
			responses[i].Phone = *l.Phone
		}
	}
	return responses
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
