// Package ledgerrepo persists capacity ledger usage snapshots. The in-memory
// ledger is authoritative at runtime; these rows let the application rebuild
// it after a restart.
package ledgerrepo

import (
	"github.com/google/uuid"
)

// CapacityEntryDTO represents one driver's usage on one calendar day. The
// composite primary key makes Upsert a natural ON CONFLICT target.
type CapacityEntryDTO struct {
	DriverID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day      string    `gorm:"type:varchar(10);primaryKey"`
	Orders   int       `gorm:"type:int;not null"`
	Weight   float64   `gorm:"not null"`
}

// TableName specifies the database table name for capacity entries.
func (CapacityEntryDTO) TableName() string {
	return "capacity_entries"
}
