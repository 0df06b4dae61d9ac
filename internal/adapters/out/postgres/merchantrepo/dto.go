// Package merchantrepo provides data transfer objects and mapping functions
// for merchant persistence.
package merchantrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/merchant"

	"github.com/google/uuid"
)

// MerchantDTO represents the database structure for persisting merchants.
type MerchantDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Email string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for merchant entities.
func (MerchantDTO) TableName() string {
	return "merchants"
}

func fromDomain(aggregate *merchant.Merchant) MerchantDTO {
	return MerchantDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Email: aggregate.Email(),
	}
}

func toDomain(dto MerchantDTO) (*merchant.Merchant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return merchant.RestoreMerchant(id, dto.Name, dto.Email)
}
