package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/partner"
	"github.com/mfgerp/backend/internal/domain/treasury"
	"github.com/shopspring/decimal"
)

// TopRankingSize is the number of parties kept in each debtor/creditor ranking
const TopRankingSize = 5

// NetPositionStatus is the qualitative reading of the net position
type NetPositionStatus string

const (
	StatusPositive NetPositionStatus = "positive"
	StatusNegative NetPositionStatus = "negative"
	StatusBalanced NetPositionStatus = "balanced"
)

// InventoryCategoryBreakdown is the valuation of one inventory ledger
type InventoryCategoryBreakdown struct {
	Category inventory.Category `json:"category"`
	Label    string             `json:"label"`
	Count    int64              `json:"count"`
	Value    decimal.Decimal    `json:"value"`
}

// TreasuryAccountBreakdown is one treasury account line
type TreasuryAccountBreakdown struct {
	ID      uuid.UUID            `json:"id"`
	Name    string               `json:"name"`
	Type    treasury.AccountType `json:"type"`
	Balance decimal.Decimal      `json:"balance"`
}

// CounterpartyBalance is one customer or supplier with a non-zero balance.
// In TopPayables the balance is the positive magnitude of what we owe.
type CounterpartyBalance struct {
	ID      uuid.UUID         `json:"id"`
	Name    string            `json:"name"`
	Type    partner.PartyType `json:"type"`
	Balance decimal.Decimal   `json:"balance"`
	Phone   *string           `json:"phone,omitempty"`
}

// AssetsSection groups the asset side of the balance sheet
type AssetsSection struct {
	Inventory   decimal.Decimal `json:"inventory"`
	Cash        decimal.Decimal `json:"cash"`
	Receivables decimal.Decimal `json:"receivables"`
	Total       decimal.Decimal `json:"total"`
}

// LiabilitiesSection groups the liability side of the balance sheet
type LiabilitiesSection struct {
	Payables decimal.Decimal `json:"payables"`
	Total    decimal.Decimal `json:"total"`
}

// BalanceSheetSnapshot is the point-in-time financial position of a tenant.
// It is built once per request and never mutated afterwards.
type BalanceSheetSnapshot struct {
	Assets             AssetsSection                `json:"assets"`
	Liabilities        LiabilitiesSection           `json:"liabilities"`
	NetPosition        decimal.Decimal              `json:"net_position"`
	CoverageRatio      int64                        `json:"coverage_ratio"` // assets / liabilities * 100
	InventoryBreakdown []InventoryCategoryBreakdown `json:"inventory_breakdown"`
	TreasuryBreakdown  []TreasuryAccountBreakdown   `json:"treasury_breakdown"`
	TopReceivables     []CounterpartyBalance        `json:"top_receivables"`
	TopPayables        []CounterpartyBalance        `json:"top_payables"`
	CustomersWithDebt  int                          `json:"customers_with_debt"`
	SuppliersWeOwe     int                          `json:"suppliers_we_owe"`
	InventoryWarnings  []inventory.Category         `json:"inventory_warnings,omitempty"` // categories degraded to zero
	GeneratedAt        time.Time                    `json:"generated_at"`
}

// QuickSummary is the headline projection of a BalanceSheetSnapshot
type QuickSummary struct {
	NetPosition      decimal.Decimal   `json:"net_position"`
	TotalAssets      decimal.Decimal   `json:"total_assets"`
	TotalLiabilities decimal.Decimal   `json:"total_liabilities"`
	Status           NetPositionStatus `json:"status"`
}

// BalanceSheetInputs are the already-fetched source ledgers for one composition
type BalanceSheetInputs struct {
	Inventory         []InventoryCategoryBreakdown
	Treasury          []TreasuryAccountBreakdown
	Counterparties    []CounterpartyBalance
	InventoryWarnings []inventory.Category
}

// SnapshotCache stores composed snapshots per tenant
type SnapshotCache interface {
	// Get returns the cached snapshot, or nil when there is none
	Get(ctx context.Context, tenantID uuid.UUID) (*BalanceSheetSnapshot, error)
	Set(ctx context.Context, tenantID uuid.UUID, snapshot *BalanceSheetSnapshot, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}
