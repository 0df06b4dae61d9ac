// Package http exposes the dispatch application over a JSON REST API built
// on Echo. Handlers translate requests into commands and queries; all
// business rules live in the application and domain layers.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers and coordinates between the transport
// layer and the application use cases.
type Server struct {
	// Command handlers
	createMerchantHandler commands.CreateMerchantCommandHandler
	createDriverHandler   commands.CreateDriverCommandHandler
	attachVehicleHandler  commands.AttachVehicleCommandHandler
	addShiftHandler       commands.AddShiftCommandHandler
	createOrderHandler    commands.CreateOrderCommandHandler
	updateOrderHandler    commands.UpdateOrderCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	completeOrderHandler  commands.CompleteOrderCommandHandler

	// Query handlers
	getMerchantOrdersHandler queries.GetMerchantOrdersQueryHandler
	getDriversHandler        queries.GetDriversQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createMerchantHandler commands.CreateMerchantCommandHandler,
	createDriverHandler commands.CreateDriverCommandHandler,
	attachVehicleHandler commands.AttachVehicleCommandHandler,
	addShiftHandler commands.AddShiftCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	getMerchantOrdersHandler queries.GetMerchantOrdersQueryHandler,
	getDriversHandler queries.GetDriversQueryHandler,
) *Server {
	return &Server{
		createMerchantHandler:    createMerchantHandler,
		createDriverHandler:      createDriverHandler,
		attachVehicleHandler:     attachVehicleHandler,
		addShiftHandler:          addShiftHandler,
		createOrderHandler:       createOrderHandler,
		updateOrderHandler:       updateOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		completeOrderHandler:     completeOrderHandler,
		getMerchantOrdersHandler: getMerchantOrdersHandler,
		getDriversHandler:        getDriversHandler,
	}
}

// RegisterRoutes attaches all API routes to the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/merchants", s.CreateMerchant)
	v1.POST("/drivers", s.CreateDriver)
	v1.GET("/drivers", s.GetDrivers)
	v1.POST("/vehicles", s.AttachVehicle)
	v1.POST("/shifts", s.AddShift)
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.PUT("/orders/:id", s.UpdateOrder)
	v1.DELETE("/orders/:id", s.CancelOrder)
	v1.POST("/orders/:id/complete", s.CompleteOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateMerchant handles POST /api/v1/merchants.
func (s *Server) CreateMerchant(ctx echo.Context) error {
	var req CreateMerchantRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	merchantID := kernel.NewUUID()
	cmd, err := commands.NewCreateMerchantCommand(merchantID, req.Name, req.Email)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createMerchantHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: merchantID.Bytes()})
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var req CreateDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, req.Name)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: driverID.Bytes()})
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	drivers, err := s.getDriversHandler.Handle(ctx.Request().Context(), queries.NewGetDriversQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		item := DriverResponse{
			ID:     d.ID.Bytes(),
			Name:   d.Name,
			Shifts: make([]ShiftResponse, 0, len(d.Shifts)),
		}
		if d.Vehicle != nil {
			item.Vehicle = &VehicleResponse{
				ID:        d.Vehicle.ID.Bytes(),
				MaxOrders: d.Vehicle.MaxOrders,
				MaxWeight: d.Vehicle.MaxWeight,
			}
		}
		for _, shift := range d.Shifts {
			item.Shifts = append(item.Shifts, ShiftResponse{
				ID:       shift.ID.Bytes(),
				StartsAt: shift.StartsAt,
				EndsAt:   shift.EndsAt,
			})
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AttachVehicle handles POST /api/v1/vehicles.
func (s *Server) AttachVehicle(ctx echo.Context) error {
	var req AttachVehicleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(req.DriverID[:])
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewAttachVehicleCommand(vehicleID, driverID, req.MaxOrders, req.MaxWeight)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.attachVehicleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: vehicleID.Bytes()})
}

// AddShift handles POST /api/v1/shifts.
func (s *Server) AddShift(ctx echo.Context) error {
	var req AddShiftRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(req.DriverID[:])
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	shiftID := kernel.NewUUID()
	cmd, err := commands.NewAddShiftCommand(shiftID, driverID, req.StartsAt, req.EndsAt)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.addShiftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: shiftID.Bytes()})
}

// CreateOrder handles POST /api/v1/orders. The order is matched to a driver
// immediately when one has room; otherwise it is accepted as pending and
// retried by the assignment job.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	merchantID, err := kernel.UUIDFromBytes(req.MerchantID[:])
	if err != nil {
		return badRequest(ctx, "Invalid merchant id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, merchantID, req.PickupAt, req.DropoffAt, req.Weight, req.Description,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID.Bytes()})
}

// GetOrders handles GET /api/v1/orders - lists a merchant's orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	merchantID, err := kernel.UUIDFromString(ctx.QueryParam("merchant_id"))
	if err != nil {
		return badRequest(ctx, "Invalid merchant id")
	}

	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	perPage, _ := strconv.Atoi(ctx.QueryParam("per_page"))

	query, err := queries.NewGetMerchantOrdersQuery(merchantID, page, perPage, ctx.QueryParam("search"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getMerchantOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := OrderListResponse{
		Orders:  make([]OrderResponse, 0, len(result.Orders)),
		Total:   result.Total,
		Page:    result.Page,
		PerPage: result.PerPage,
	}
	for _, o := range result.Orders {
		item := OrderResponse{
			ID:          o.ID.Bytes(),
			Status:      o.Status,
			PickupAt:    o.PickupAt,
			DropoffAt:   o.DropoffAt,
			Weight:      o.Weight,
			Description: o.Description,
			DriverName:  o.DriverName,
		}
		if o.DriverID != nil {
			raw := o.DriverID.Bytes()
			item.DriverID = &raw
		}
		response.Orders = append(response.Orders, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PUT /api/v1/orders/:id. Omitted fields keep their
// stored values; a change to the window or weight may rebook the order onto
// a different driver or return it to pending.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	merchantID, err := kernel.UUIDFromBytes(req.MerchantID[:])
	if err != nil {
		return badRequest(ctx, "Invalid merchant id")
	}

	cmd, err := commands.NewUpdateOrderCommand(
		orderID, merchantID, req.PickupAt, req.DropoffAt, req.Weight, req.Description,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles DELETE /api/v1/orders/:id.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	merchantID, err := kernel.UUIDFromString(ctx.QueryParam("merchant_id"))
	if err != nil {
		return badRequest(ctx, "Invalid merchant id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, merchantID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CompleteOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(req.DriverID[:])
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, driverID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func errorResponse(ctx echo.Context, err error) error {
	// ErrNoDriverAvailable never reaches the transport layer; handlers keep
	// such orders pending. Treat a leak as a server fault.
	if errors.Is(err, services.ErrNoDriverAvailable) {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	status := statusFromError(err)
	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
