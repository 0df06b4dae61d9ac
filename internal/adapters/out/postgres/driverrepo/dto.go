// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence. It implements the repository pattern for the driver
// aggregate, persisting the driver together with its vehicle and shifts.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. Driver names are unique across the fleet.
type DriverDTO struct {
	ID      uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name    string      `gorm:"type:varchar(255);not null;uniqueIndex"`
	Vehicle *VehicleDTO `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
	Shifts  []ShiftDTO  `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// VehicleDTO represents the database structure for persisting vehicle
// entities. The unique index on DriverID enforces one vehicle per driver.
type VehicleDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	MaxOrders int       `gorm:"type:int;not null"`
	MaxWeight float64   `gorm:"not null"`
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// ShiftDTO represents the database structure for persisting shift entities.
// Day holds the shift's calendar day so the matcher can select the drivers
// working on an order's pickup day with a plain indexed equality.
type ShiftDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID uuid.UUID `gorm:"type:uuid;not null;index"`
	Day      string    `gorm:"type:varchar(10);not null;index"`
	StartsAt time.Time `gorm:"not null"`
	EndsAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for shift entities.
func (ShiftDTO) TableName() string {
	return "shifts"
}

// fromDomain converts a driver domain aggregate to its database
// representation, including the optional vehicle and all shifts.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	driverID := aggregate.ID().Bytes()

	var vehicle *VehicleDTO
	if v := aggregate.Vehicle(); v != nil {
		vehicle = &VehicleDTO{
			ID:        v.ID().Bytes(),
			DriverID:  driverID,
			MaxOrders: v.MaxOrders(),
			MaxWeight: v.MaxWeight(),
		}
	}

	shifts := make([]ShiftDTO, 0, len(aggregate.Shifts()))
	for _, s := range aggregate.Shifts() {
		shifts = append(shifts, ShiftDTO{
			ID:       s.ID().Bytes(),
			DriverID: driverID,
			Day:      s.Day(),
			StartsAt: s.Start(),
			EndsAt:   s.End(),
		})
	}

	return DriverDTO{
		ID:      driverID,
		Name:    aggregate.Name(),
		Vehicle: vehicle,
		Shifts:  shifts,
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
// Reconstructs the full aggregate with its vehicle and shifts using
// RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var vehicle *driver.Vehicle
	if dto.Vehicle != nil {
		vehicle, err = vehicleToDomain(*dto.Vehicle)
		if err != nil {
			return nil, err
		}
	}

	shifts := make([]*driver.Shift, 0, len(dto.Shifts))
	for _, shiftDto := range dto.Shifts {
		s, shiftErr := shiftToDomain(shiftDto)
		if shiftErr != nil {
			return nil, shiftErr
		}
		shifts = append(shifts, s)
	}

	return driver.RestoreDriver(id, dto.Name, vehicle, shifts)
}

func vehicleToDomain(dto VehicleDTO) (*driver.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreVehicle(id, dto.MaxOrders, dto.MaxWeight)
}

func shiftToDomain(dto ShiftDTO) (*driver.Shift, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreShift(id, dto.StartsAt.UTC(), dto.EndsAt.UTC())
}
