package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category identifies one of the fixed inventory ledgers of the plant
type Category string

const (
	CategoryRawMaterial       Category = "raw_material"
	CategoryPackagingMaterial Category = "packaging_material"
	CategorySemiFinished      Category = "semi_finished"
	CategoryFinishedGood      Category = "finished_good"
)

var categoryLabels = map[Category]string{
	CategoryRawMaterial:       "Raw Materials",
	CategoryPackagingMaterial: "Packaging Materials",
	CategorySemiFinished:      "Semi-Finished Goods",
	CategoryFinishedGood:      "Finished Goods",
}

// Categories returns all inventory categories in reporting order
func Categories() []Category {
	return []Category{
		CategoryRawMaterial,
		CategoryPackagingMaterial,
		CategorySemiFinished,
		CategoryFinishedGood,
	}
}

// IsValid returns true if the category is one of the known ledgers
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human readable name of the category
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// StockRecord is a single valued line in one of the inventory ledgers.
// Quantity and UnitCost are optional in the source data; nil counts as zero.
type StockRecord struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Category Category
	Name     string
	Quantity *decimal.Decimal
	UnitCost *decimal.Decimal
}

// QuantityOrZero returns the quantity, treating a missing value as zero
func (r StockRecord) QuantityOrZero() decimal.Decimal {
	if r.Quantity == nil {
		return decimal.Zero
	}
	return *r.Quantity
}

// UnitCostOrZero returns the unit cost, treating a missing value as zero
func (r StockRecord) UnitCostOrZero() decimal.Decimal {
	if r.UnitCost == nil {
		return decimal.Zero
	}
	return *r.UnitCost
}

// Value returns quantity × unit cost for this record
func (r StockRecord) Value() decimal.Decimal {
	return r.QuantityOrZero().Mul(r.UnitCostOrZero())
}

// StockRecordRepository is the read side of the inventory ledgers
type StockRecordRepository interface {
	// FindByCategory returns every stock record of a category for the tenant
	FindByCategory(ctx context.Context, tenantID uuid.UUID, category Category) ([]StockRecord, error)
}
