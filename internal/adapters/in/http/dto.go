package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Created is the JSON body returned when a resource was created.
type Created struct {
	ID uuid.UUID `json:"id"`
}

type CreateMerchantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateDriverRequest struct {
	Name string `json:"name"`
}

type AttachVehicleRequest struct {
	DriverID  uuid.UUID `json:"driver_id"`
	MaxOrders int       `json:"max_orders"`
	MaxWeight float64   `json:"max_weight"`
}

type AddShiftRequest struct {
	DriverID uuid.UUID `json:"driver_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type CreateOrderRequest struct {
	MerchantID  uuid.UUID `json:"merchant_id"`
	PickupAt    time.Time `json:"pickup_at"`
	DropoffAt   time.Time `json:"dropoff_at"`
	Weight      float64   `json:"weight"`
	Description string    `json:"description"`
}

// UpdateOrderRequest carries a partial order change. Nil fields keep the
// stored value.
type UpdateOrderRequest struct {
	MerchantID  uuid.UUID  `json:"merchant_id"`
	PickupAt    *time.Time `json:"pickup_at"`
	DropoffAt   *time.Time `json:"dropoff_at"`
	Weight      *float64   `json:"weight"`
	Description *string    `json:"description"`
}

type CompleteOrderRequest struct {
	DriverID uuid.UUID `json:"driver_id"`
}

type OrderResponse struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	PickupAt    time.Time  `json:"pickup_at"`
	DropoffAt   time.Time  `json:"dropoff_at"`
	Weight      float64    `json:"weight"`
	Description string     `json:"description"`
	DriverID    *uuid.UUID `json:"driver_id,omitempty"`
	DriverName  *string    `json:"driver_name,omitempty"`
}

type OrderListResponse struct {
	Orders  []OrderResponse `json:"orders"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

type VehicleResponse struct {
	ID        uuid.UUID `json:"id"`
	MaxOrders int       `json:"max_orders"`
	MaxWeight float64   `json:"max_weight"`
}

type ShiftResponse struct {
	ID       uuid.UUID `json:"id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type DriverResponse struct {
	ID      uuid.UUID        `json:"id"`
	Name    string           `json:"name"`
	Vehicle *VehicleResponse `json:"vehicle,omitempty"`
	Shifts  []ShiftResponse  `json:"shifts"`
}

// statusFromError maps domain and application errors onto HTTP status codes.
// Anything unrecognized is a server fault.
func statusFromError(err error) int {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrMerchantNotOwner):
		return http.StatusForbidden
	case isConflictError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, kernel.ErrWindowTooShort) ||
		errors.Is(err, kernel.ErrWindowTooLong) ||
		errors.Is(err, kernel.ErrWindowCrossesDayBoundary) ||
		errors.Is(err, driver.ErrShiftEndsBeforeStart) ||
		errors.Is(err, driver.ErrShiftCrossesDayBoundary)
}

func isConflictError(err error) bool {
	return errors.Is(err, order.ErrOrderIsTerminal) ||
		errors.Is(err, order.ErrOrderNotAssignedToDriver) ||
		errors.Is(err, driver.ErrVehicleAlreadyAttached) ||
		errors.Is(err, driver.ErrShiftAlreadyExistsForDay)
}
