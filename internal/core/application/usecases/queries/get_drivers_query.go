package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery retrieves every driver with its vehicle and shift
// schedule. This is a parameterless query used by the fleet listing.
type GetDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDriversQuery creates a query to list drivers.
func NewGetDriversQuery() GetDriversQuery {
	return GetDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// VehicleResponse is a driver's vehicle with its capacity limits.
type VehicleResponse struct {
	ID        kernel.UUID
	MaxOrders int
	MaxWeight float64
}

// ShiftResponse is one working interval of a driver.
type ShiftResponse struct {
	ID       kernel.UUID
	StartsAt time.Time
	EndsAt   time.Time
}

// GetDriversQueryResponse is one driver in the fleet listing. Vehicle is
// nil for drivers without one; Shifts is ordered by start time.
type GetDriversQueryResponse struct {
	ID      kernel.UUID
	Name    string
	Vehicle *VehicleResponse
	Shifts  []ShiftResponse
}
