package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates,
// including their vehicle and shift schedule.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate, including a
	// newly attached vehicle or added shifts.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllWithShiftOn retrieves every driver that has a shift registered on
	// the given calendar day. Used by the matcher to build the candidate set.
	GetAllWithShiftOn(ctx context.Context, day string) ([]*driver.Driver, error)
}
