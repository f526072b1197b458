package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockRecordRepository implements inventory.StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByCategory returns every stock record of one category for the tenant
func (r *GormStockRecordRepository) FindByCategory(ctx context.Context, tenantID uuid.UUID, category inventory.Category) ([]inventory.StockRecord, error) {
	var rows []models.StockRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND category = ?", tenantID, category).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]inventory.StockRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}

// Ensure GormStockRecordRepository implements StockRecordRepository
var _ inventory.StockRecordRepository = (*GormStockRecordRepository)(nil)
