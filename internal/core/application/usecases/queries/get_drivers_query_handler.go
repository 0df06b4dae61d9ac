package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriversQueryHandler reads the driver fleet from the database: drivers
// with their vehicle and shift schedule, assembled from three flat queries.
type GetDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetDriversQueryHandler creates a handler for fleet listings.
func NewGetDriversQueryHandler(db *gorm.DB) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db}
}

// Handle returns every driver sorted by name, with vehicle and shifts.
func (h GetDriversQueryHandler) Handle(
	ctx context.Context,
	query GetDriversQuery,
) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers, index, err := h.loadDrivers(ctx)
	if err != nil {
		return nil, err
	}
	if err = h.loadVehicles(ctx, drivers, index); err != nil {
		return nil, err
	}
	if err = h.loadShifts(ctx, drivers, index); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (h GetDriversQueryHandler) loadDrivers(
	ctx context.Context,
) ([]GetDriversQueryResponse, map[uuid.UUID]int, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name
		FROM drivers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	drivers := make([]GetDriversQueryResponse, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)
		if err = rows.Scan(&id, &name); err != nil {
			return nil, nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		index[id] = len(drivers)
		drivers = append(drivers, GetDriversQueryResponse{ID: driverID, Name: name})
	}
	if err = rows.Err(); err != nil {
		return nil, nil, err
	}
	return drivers, index, nil
}

func (h GetDriversQueryHandler) loadVehicles(
	ctx context.Context,
	drivers []GetDriversQueryResponse,
	index map[uuid.UUID]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, driver_id, max_orders, max_weight
		FROM vehicles
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			driverID  uuid.UUID
			maxOrders int
			maxWeight float64
		)
		if err = rows.Scan(&id, &driverID, &maxOrders, &maxWeight); err != nil {
			return err
		}

		pos, ok := index[driverID]
		if !ok {
			continue
		}
		vehicleID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		drivers[pos].Vehicle = &VehicleResponse{
			ID:        vehicleID,
			MaxOrders: maxOrders,
			MaxWeight: maxWeight,
		}
	}
	return rows.Err()
}

func (h GetDriversQueryHandler) loadShifts(
	ctx context.Context,
	drivers []GetDriversQueryResponse,
	index map[uuid.UUID]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, driver_id, starts_at, ends_at
		FROM shifts
		ORDER BY starts_at
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       uuid.UUID
			driverID uuid.UUID
			startsAt time.Time
			endsAt   time.Time
		)
		if err = rows.Scan(&id, &driverID, &startsAt, &endsAt); err != nil {
			return err
		}

		pos, ok := index[driverID]
		if !ok {
			continue
		}
		shiftID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		drivers[pos].Shifts = append(drivers[pos].Shifts, ShiftResponse{
			ID:       shiftID,
			StartsAt: startsAt,
			EndsAt:   endsAt,
		})
	}
	return rows.Err()
}
