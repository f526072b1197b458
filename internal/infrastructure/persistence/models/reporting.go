package models

import (
	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/partner"
	"github.com/mfgerp/backend/internal/domain/treasury"
	"github.com/shopspring/decimal"
)

// StockRecordModel is the persistence model for an inventory stock record.
// Quantity and unit cost are nullable; a missing value counts as zero.
type StockRecordModel struct {
	TenantModel
	Category inventory.Category  `gorm:"type:varchar(32);not null;index:idx_stock_records_tenant_category,priority:2"`
	Name     string              `gorm:"type:varchar(200);not null"`
	Quantity decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	UnitCost decimal.NullDecimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (StockRecordModel) TableName() string {
	return "stock_records"
}

// ToDomain converts the persistence model to a domain StockRecord
func (m *StockRecordModel) ToDomain() inventory.StockRecord {
	return inventory.StockRecord{
		ID:       m.ID,
		TenantID: m.TenantID,
		Category: m.Category,
		Name:     m.Name,
		Quantity: nullDecimalPtr(m.Quantity),
		UnitCost: nullDecimalPtr(m.UnitCost),
	}
}

// TreasuryAccountModel is the persistence model for a cash or bank account
type TreasuryAccountModel struct {
	TenantModel
	Name    string               `gorm:"type:varchar(200);not null"`
	Type    treasury.AccountType `gorm:"type:varchar(20);not null"`
	Balance decimal.NullDecimal  `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (TreasuryAccountModel) TableName() string {
	return "treasury_accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *TreasuryAccountModel) ToDomain() treasury.Account {
	return treasury.Account{
		ID:       m.ID,
		TenantID: m.TenantID,
		Name:     m.Name,
		Type:     m.Type,
		Balance:  nullDecimalPtr(m.Balance),
	}
}

// PartyModel is the persistence model for a customer or supplier ledger balance.
// A positive balance is owed to us, a negative balance is owed by us.
type PartyModel struct {
	TenantModel
	Name    string            `gorm:"type:varchar(200);not null"`
	Type    partner.PartyType `gorm:"type:varchar(20);not null;index:idx_parties_tenant_type,priority:2"`
	Balance decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Phone   *string           `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (PartyModel) TableName() string {
	return "parties"
}

// ToDomain converts the persistence model to a domain Party
func (m *PartyModel) ToDomain() partner.Party {
	return partner.Party{
		ID:       m.ID,
		TenantID: m.TenantID,
		Name:     m.Name,
		Type:     m.Type,
		Balance:  m.Balance,
		Phone:    m.Phone,
	}
}

// NewStockRecordModel builds a model for seeding and tests
func NewStockRecordModel(tenantID uuid.UUID, category inventory.Category, name string, quantity, unitCost *decimal.Decimal) *StockRecordModel {
	return &StockRecordModel{
		TenantModel: newTenantModel(tenantID),
		Category:    category,
		Name:        name,
		Quantity:    toNullDecimal(quantity),
		UnitCost:    toNullDecimal(unitCost),
	}
}

// NewTreasuryAccountModel builds a model for seeding and tests
func NewTreasuryAccountModel(tenantID uuid.UUID, name string, accountType treasury.AccountType, balance *decimal.Decimal) *TreasuryAccountModel {
	return &TreasuryAccountModel{
		TenantModel: newTenantModel(tenantID),
		Name:        name,
		Type:        accountType,
		Balance:     toNullDecimal(balance),
	}
}

// NewPartyModel builds a model for seeding and tests
func NewPartyModel(tenantID uuid.UUID, name string, partyType partner.PartyType, balance decimal.Decimal, phone *string) *PartyModel {
	return &PartyModel{
		TenantModel: newTenantModel(tenantID),
		Name:        name,
		Type:        partyType,
		Balance:     balance,
		Phone:       phone,
	}
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
