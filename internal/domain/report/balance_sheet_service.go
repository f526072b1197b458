package report

import (
	"slices"
	"time"

	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/partner"
	"github.com/mfgerp/backend/internal/domain/treasury"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValueCategory reduces the stock records of one category to its breakdown line
func ValueCategory(category inventory.Category, records []inventory.StockRecord) InventoryCategoryBreakdown {
	value := decimal.Zero
	for _, r := range records {
		value = value.Add(r.Value())
	}
	return InventoryCategoryBreakdown{
		Category: category,
		Label:    category.Label(),
		Count:    int64(len(records)),
		Value:    value,
	}
}

// EmptyCategory returns the zero breakdown used when a category has no data
func EmptyCategory(category inventory.Category) InventoryCategoryBreakdown {
	return ValueCategory(category, nil)
}

// TreasuryBreakdown converts accounts to breakdown lines sorted by balance, highest first
func TreasuryBreakdown(accounts []treasury.Account) []TreasuryAccountBreakdown {
	lines := make([]TreasuryAccountBreakdown, len(accounts))
	for i, a := range accounts {
		lines[i] = TreasuryAccountBreakdown{
			ID:      a.ID,
			Name:    a.Name,
			Type:    a.Type,
			Balance: a.BalanceOrZero(),
		}
	}
	slices.SortStableFunc(lines, func(a, b TreasuryAccountBreakdown) int {
		return b.Balance.Cmp(a.Balance)
	})
	return lines
}

// CounterpartyBalances keeps parties with a non-zero balance, sorted by balance, highest first
func CounterpartyBalances(parties []partner.Party) []CounterpartyBalance {
	lines := make([]CounterpartyBalance, 0, len(parties))
	for _, p := range parties {
		if p.Balance.IsZero() {
			continue
		}
		lines = append(lines, CounterpartyBalance{
			ID:      p.ID,
			Name:    p.Name,
			Type:    p.Type,
			Balance: p.Balance,
			Phone:   p.Phone,
		})
	}
	slices.SortStableFunc(lines, func(a, b CounterpartyBalance) int {
		return b.Balance.Cmp(a.Balance)
	})
	return lines
}

// ComposeBalanceSheet builds the snapshot from already-fetched ledgers.
// It is pure: the same inputs and timestamp always give the same snapshot.
func ComposeBalanceSheet(in BalanceSheetInputs, generatedAt time.Time) *BalanceSheetSnapshot {
	inventoryTotal := decimal.Zero
	for _, c := range in.Inventory {
		inventoryTotal = inventoryTotal.Add(c.Value)
	}

	cashTotal := decimal.Zero
	for _, a := range in.Treasury {
		cashTotal = cashTotal.Add(a.Balance)
	}

	receivables := make([]CounterpartyBalance, 0)
	payables := make([]CounterpartyBalance, 0)
	receivablesTotal := decimal.Zero
	payablesSum := decimal.Zero
	for _, cp := range in.Counterparties {
		switch {
		case cp.Type == partner.PartyTypeCustomer && cp.Balance.IsPositive():
			receivables = append(receivables, cp)
			receivablesTotal = receivablesTotal.Add(cp.Balance)
		case cp.Type == partner.PartyTypeSupplier && cp.Balance.IsNegative():
			payables = append(payables, cp)
			payablesSum = payablesSum.Add(cp.Balance)
		}
	}
	payablesTotal := payablesSum.Abs()

	assetsTotal := inventoryTotal.Add(cashTotal).Add(receivablesTotal)
	liabilitiesTotal := payablesTotal

	return &BalanceSheetSnapshot{
		Assets: AssetsSection{
			Inventory:   inventoryTotal,
			Cash:        cashTotal,
			Receivables: receivablesTotal,
			Total:       assetsTotal,
		},
		Liabilities: LiabilitiesSection{
			Payables: payablesTotal,
			Total:    liabilitiesTotal,
		},
		NetPosition:        assetsTotal.Sub(liabilitiesTotal),
		CoverageRatio:      CoverageRatio(assetsTotal, liabilitiesTotal),
		InventoryBreakdown: slices.Clone(in.Inventory),
		TreasuryBreakdown:  slices.Clone(in.Treasury),
		TopReceivables:     topReceivables(receivables),
		TopPayables:        topPayables(payables),
		CustomersWithDebt:  len(receivables),
		SuppliersWeOwe:     len(payables),
		InventoryWarnings:  slices.Clone(in.InventoryWarnings),
		GeneratedAt:        generatedAt,
	}
}

// CoverageRatio returns assets as a whole percentage of liabilities.
// With no liabilities the ratio is 100 by convention. Halves round up.
func CoverageRatio(assets, liabilities decimal.Decimal) int64 {
	if !liabilities.IsPositive() {
		return 100
	}
	ratio := assets.Mul(hundred).Div(liabilities)
	return ratio.Add(decimal.NewFromFloat(0.5)).Floor().IntPart()
}

func topReceivables(receivables []CounterpartyBalance) []CounterpartyBalance {
	ranked := slices.Clone(receivables)
	slices.SortStableFunc(ranked, func(a, b CounterpartyBalance) int {
		return b.Balance.Cmp(a.Balance)
	})
	if len(ranked) > TopRankingSize {
		ranked = ranked[:TopRankingSize]
	}
	return ranked
}

// topPayables ranks by largest debt first (most negative balance) and reports magnitudes
func topPayables(payables []CounterpartyBalance) []CounterpartyBalance {
	ranked := slices.Clone(payables)
	slices.SortStableFunc(ranked, func(a, b CounterpartyBalance) int {
		return a.Balance.Cmp(b.Balance)
	})
	if len(ranked) > TopRankingSize {
		ranked = ranked[:TopRankingSize]
	}
	for i := range ranked {
		ranked[i].Balance = ranked[i].Balance.Neg()
	}
	return ranked
}

// Summarize projects a snapshot to its headline figures
func Summarize(snapshot *BalanceSheetSnapshot) QuickSummary {
	return QuickSummary{
		NetPosition:      snapshot.NetPosition,
		TotalAssets:      snapshot.Assets.Total,
		TotalLiabilities: snapshot.Liabilities.Total,
		Status:           StatusOf(snapshot.NetPosition),
	}
}

// StatusOf classifies a net position
func StatusOf(netPosition decimal.Decimal) NetPositionStatus {
	switch netPosition.Sign() {
	case 1:
		return StatusPositive
	case -1:
		return StatusNegative
	default:
		return StatusBalanced
	}
}
