package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// LedgerRepository persists per-driver per-day usage snapshots of the
// capacity ledger. The in-memory ledger stays authoritative at runtime;
// these rows exist so the composition root can rebuild it after a restart.
type LedgerRepository interface {
	// Upsert writes the usage row for one driver/day, inserting or replacing
	// as needed. A zero usage removes the row.
	Upsert(ctx context.Context, driverID kernel.UUID, day string, orders int, weight float64) error

	// GetAll retrieves every stored usage row.
	GetAll(ctx context.Context) ([]services.LedgerEntry, error)
}
