package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyType distinguishes customers from suppliers
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeSupplier PartyType = "supplier"
)

// IsValid returns true if the party type is recognized
func (t PartyType) IsValid() bool {
	return t == PartyTypeCustomer || t == PartyTypeSupplier
}

// Party is a counterparty with a running balance.
//
// Sign convention: a positive customer balance is money the customer owes us,
// a negative supplier balance is money we owe the supplier. The opposite signs
// are credits or prepayments and are neither receivables nor payables.
type Party struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	Type     PartyType
	Balance  decimal.Decimal
	Phone    *string
}

// IsCustomer returns true if the party is a customer
func (p Party) IsCustomer() bool {
	return p.Type == PartyTypeCustomer
}

// IsSupplier returns true if the party is a supplier
func (p Party) IsSupplier() bool {
	return p.Type == PartyTypeSupplier
}

// IsReceivable returns true if the party is a customer that owes us money
func (p Party) IsReceivable() bool {
	return p.IsCustomer() && p.Balance.IsPositive()
}

// IsPayable returns true if the party is a supplier we owe money to
func (p Party) IsPayable() bool {
	return p.IsSupplier() && p.Balance.IsNegative()
}

// PartyRepository is the read side of the counterparty ledger
type PartyRepository interface {
	// FindWithNonZeroBalance returns parties whose balance is not zero
	FindWithNonZeroBalance(ctx context.Context, tenantID uuid.UUID) ([]Party, error)
}
