package treasury

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType distinguishes cash boxes from bank accounts
type AccountType string

const (
	AccountTypeCash AccountType = "cash"
	AccountTypeBank AccountType = "bank"
)

// IsValid returns true if the account type is recognized
func (t AccountType) IsValid() bool {
	return t == AccountTypeCash || t == AccountTypeBank
}

// Account is a treasury account holding money of the operation.
// Balances are usually non-negative but overdrafts are carried as-is.
type Account struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	Type     AccountType
	Balance  *decimal.Decimal
}

// BalanceOrZero returns the balance, treating a missing value as zero
func (a Account) BalanceOrZero() decimal.Decimal {
	if a.Balance == nil {
		return decimal.Zero
	}
	return *a.Balance
}

// AccountRepository is the read side of the treasury ledger
type AccountRepository interface {
	// FindAll returns all treasury accounts of the tenant
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Account, error)
}
