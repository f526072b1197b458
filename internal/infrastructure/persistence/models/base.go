package models

import (
	"time"

	"github.com/google/uuid"
)

// TenantModel provides the common persistence fields for tenant-scoped rows
type TenantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func newTenantModel(tenantID uuid.UUID) TenantModel {
	now := time.Now()
	return TenantModel{
		ID:        uuid.New(),
		TenantID:  tenantID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
