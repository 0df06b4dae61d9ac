package ledgerrepo

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Upsert writes the usage row for one driver/day. Zero usage deletes the
// row instead, mirroring the in-memory ledger's delete-on-zero behavior.
func (r *GormLedgerRepository) Upsert(
	ctx context.Context,
	driverID kernel.UUID,
	day string,
	orders int,
	weight float64,
) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if orders <= 0 && weight <= 0 {
		return r.db.WithContext(ctx).
			Delete(&CapacityEntryDTO{}, "driver_id = ? AND day = ?", driverID.Bytes(), day).Error
	}

	dto := CapacityEntryDTO{
		DriverID: driverID.Bytes(),
		Day:      day,
		Orders:   orders,
		Weight:   weight,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "driver_id"}, {Name: "day"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// GetAll retrieves every stored usage row.
func (r *GormLedgerRepository) GetAll(ctx context.Context) ([]services.LedgerEntry, error) {
	var dtos []CapacityEntryDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]services.LedgerEntry, 0, len(dtos))
	for _, dto := range dtos {
		driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
		if err != nil {
			return nil, err
		}
		entries = append(entries, services.LedgerEntry{
			DriverID: driverID,
			Day:      dto.Day,
			Orders:   dto.Orders,
			Weight:   dto.Weight,
		})
	}

	return entries, nil
}
