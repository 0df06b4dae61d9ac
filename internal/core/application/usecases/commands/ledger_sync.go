package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// syncLedgerRow writes the in-memory ledger's current usage for one
// driver/day into the transaction's snapshot row. Called after every
// reserve or release so a restart can rebuild the ledger from storage.
func syncLedgerRow(
	ctx context.Context,
	repo ports.LedgerRepository,
	ledger *services.CapacityLedger,
	driverID kernel.UUID,
	day string,
) error {
	usage := ledger.Peek(driverID, day)
	return repo.Upsert(ctx, driverID, day, usage.Orders, usage.Weight)
}
