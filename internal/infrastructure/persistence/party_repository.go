package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/partner"
	"github.com/mfgerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPartyRepository implements partner.PartyRepository using GORM
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// FindWithNonZeroBalance returns customers and suppliers whose balance is not zero, highest first
func (r *GormPartyRepository) FindWithNonZeroBalance(ctx context.Context, tenantID uuid.UUID) ([]partner.Party, error) {
	var rows []models.PartyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND balance <> 0", tenantID).
		Where("type IN ?", []partner.PartyType{partner.PartyTypeCustomer, partner.PartyTypeSupplier}).
		Order("balance DESC").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	parties := make([]partner.Party, len(rows))
	for i := range rows {
		parties[i] = rows[i].ToDomain()
	}
	return parties, nil
}

// Ensure GormPartyRepository implements PartyRepository
var _ partner.PartyRepository = (*GormPartyRepository)(nil)
