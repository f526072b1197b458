package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/treasury"
	"github.com/mfgerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTreasuryAccountRepository implements treasury.AccountRepository using GORM
type GormTreasuryAccountRepository struct {
	db *gorm.DB
}

// NewGormTreasuryAccountRepository creates a new GormTreasuryAccountRepository
func NewGormTreasuryAccountRepository(db *gorm.DB) *GormTreasuryAccountRepository {
	return &GormTreasuryAccountRepository{db: db}
}

// FindAll returns every treasury account of the tenant, highest balance first.
// Accounts without a balance sort last.
func (r *GormTreasuryAccountRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]treasury.Account, error) {
	var rows []models.TreasuryAccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("COALESCE(balance, 0) DESC").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	accounts := make([]treasury.Account, len(rows))
	for i := range rows {
		accounts[i] = rows[i].ToDomain()
	}
	return accounts, nil
}

// Ensure GormTreasuryAccountRepository implements AccountRepository
var _ treasury.AccountRepository = (*GormTreasuryAccountRepository)(nil)
