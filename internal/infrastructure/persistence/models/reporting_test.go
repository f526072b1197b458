package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/partner"
	"github.com/mfgerp/backend/internal/domain/treasury"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockRecordModel_ToDomain(t *testing.T) {
	tenantID := uuid.New()

	t.Run("keeps quantity and cost", func(t *testing.T) {
		qty := decimal.NewFromInt(12)
		cost := decimal.RequireFromString("2.5")
		m := NewStockRecordModel(tenantID, inventory.CategoryRawMaterial, "Steel sheet", &qty, &cost)

		r := m.ToDomain()

		assert.Equal(t, m.ID, r.ID)
		assert.Equal(t, tenantID, r.TenantID)
		assert.Equal(t, inventory.CategoryRawMaterial, r.Category)
		require.NotNil(t, r.Quantity)
		require.NotNil(t, r.UnitCost)
		assert.True(t, decimal.NewFromInt(30).Equal(r.Value()))
	})

	t.Run("null columns become nil", func(t *testing.T) {
		m := NewStockRecordModel(tenantID, inventory.CategoryFinishedGood, "Chair", nil, nil)

		r := m.ToDomain()

		assert.Nil(t, r.Quantity)
		assert.Nil(t, r.UnitCost)
		assert.True(t, r.Value().IsZero())
	})
}

func TestTreasuryAccountModel_ToDomain(t *testing.T) {
	m := NewTreasuryAccountModel(uuid.New(), "Petty cash", treasury.AccountTypeCash, nil)

	a := m.ToDomain()

	assert.Equal(t, "Petty cash", a.Name)
	assert.Equal(t, treasury.AccountTypeCash, a.Type)
	assert.Nil(t, a.Balance)
	assert.True(t, a.BalanceOrZero().IsZero())
	assert.Equal(t, "treasury_accounts", m.TableName())
}

func TestPartyModel_ToDomain(t *testing.T) {
	phone := "+33 1 23 45 67 89"
	m := NewPartyModel(uuid.New(), "Steel supplier", partner.PartyTypeSupplier, decimal.NewFromInt(-400), &phone)

	p := m.ToDomain()

	assert.True(t, p.IsPayable())
	assert.False(t, p.IsReceivable())
	require.NotNil(t, p.Phone)
	assert.Equal(t, phone, *p.Phone)
	assert.Equal(t, "parties", m.TableName())
}
