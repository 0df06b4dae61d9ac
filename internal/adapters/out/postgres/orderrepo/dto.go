// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by merchant for listing queries and by status for the assignment
// job's pending scan.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MerchantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID   *uuid.UUID `gorm:"type:uuid"`
	PickupAt    time.Time  `gorm:"not null"`
	DropoffAt   time.Time  `gorm:"not null"`
	Weight      float64    `gorm:"not null"`
	Description string     `gorm:"type:text"`
	Status      int        `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var vehicleID *uuid.UUID
	if id := aggregate.Vehicle(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		MerchantID:  aggregate.MerchantID().Bytes(),
		DriverID:    driverID,
		VehicleID:   vehicleID,
		PickupAt:    aggregate.Window().Pickup(),
		DropoffAt:   aggregate.Window().Dropoff(),
		Weight:      aggregate.Weight(),
		Description: aggregate.Description(),
		Status:      int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the full aggregate including status and driver binding via
// RestoreOrder. Timestamps are normalized to UTC so window day computations
// do not depend on the connection's session time zone.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleID = &vID
	}

	window, err := kernel.NewTimeWindow(dto.PickupAt.UTC(), dto.DropoffAt.UTC())
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		merchantID,
		driverID,
		vehicleID,
		window,
		dto.Weight,
		dto.Description,
		order.Status(dto.Status),
	)
}
