// Package http exposes the engine over REST. Handlers translate between the
// wire types of the generated server interface and the application layer's
// commands and queries, and map domain errors onto the HTTP error taxonomy.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	CreateDriver     commands.CreateDriverCommandHandler
	AssignOrder      commands.AssignOrderCommandHandler
	TransitionOrder  commands.TransitionOrderCommandHandler
	ReleaseOrder     commands.ReleaseOrderCommandHandler
	ReportLocation   commands.ReportLocationCommandHandler
	Dispatch         commands.DispatchPendingOrderCommandHandler
	RegisterHandover commands.RegisterHandoverCommandHandler
	ResolveHandover  commands.ResolveHandoverCommandHandler

	GetOrders    queries.GetOrdersHandler
	GetOrder     queries.GetOrderHandler
	GetDrivers   queries.GetDriversHandler
	GetHandovers queries.GetHandoversHandler
}

// Server implements the generated ServerInterface.
type Server struct {
	handlers Handlers
}

// NewServer creates the HTTP server facade.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// writeError maps a domain error onto the wire taxonomy. Conflicting state
// is always 409 regardless of which rule rejected the request; the kind
// distinguishes them for clients.
func writeError(ctx echo.Context, err error) error {
	var (
		status = http.StatusInternalServerError
		kind   = "internal"
	)

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, order.ErrInvalidTransition):
		status, kind = http.StatusConflict, "invalid_transition"
	case errors.Is(err, order.ErrAlreadyAssigned):
		status, kind = http.StatusConflict, "already_assigned"
	case errors.Is(err, order.ErrNotAssigned):
		status, kind = http.StatusConflict, "not_assigned"
	case errors.Is(err, order.ErrOrderNotReleasable):
		status, kind = http.StatusConflict, "not_releasable"
	case errors.Is(err, driver.ErrOrderNotHeld):
		status, kind = http.StatusConflict, "not_held"
	case errors.Is(err, cash.ErrAlreadyResolved):
		status, kind = http.StatusConflict, "already_resolved"
	case errors.Is(err, errs.ErrVersionIsInvalid):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, services.ErrNoDriverAvailable):
		status, kind = http.StatusConflict, "no_driver_available"
	case errors.Is(err, commands.ErrNoPendingOrder):
		status, kind = http.StatusConflict, "no_pending_order"
	case errors.Is(err, errs.ErrValueIsOutOfRange):
		status, kind = http.StatusBadRequest, "out_of_range"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		status, kind = http.StatusBadRequest, "validation"
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Kind:    kind,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Kind:    "validation",
		Message: message,
	})
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	var driverID *kernel.UUID
	if params.DriverId != nil {
		id, err := kernel.UUIDFromBytes((*params.DriverId)[:])
		if err != nil {
			return badRequest(ctx, "invalid driver_id")
		}
		driverID = &id
	}

	var status *order.Status
	if params.Status != nil {
		parsed, err := order.StatusFromString(string(*params.Status))
		if err != nil {
			return badRequest(ctx, "invalid status")
		}
		status = &parsed
	}

	query, err := queries.NewGetOrdersQuery(driverID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	summaries, err := s.handlers.GetOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Order, len(summaries))
	for i, summary := range summaries {
		response[i] = toWireOrder(summary)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(
		body.Reference,
		body.CustomerName,
		stringValue(body.CustomerPhone),
		body.Address,
		body.CashDue,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Order{
		Id:            created.ID().Bytes(),
		Reference:     created.Reference(),
		CustomerName:  created.CustomerName(),
		Address:       created.Address(),
		Status:        servers.OrderStatus(created.Status().String()),
		CashDue:       created.CashDue().Amount(),
		CashCollected: created.CashCollected().Amount(),
		CreatedAt:     created.Timeline()[0].Timestamp(),
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	timeline := make([]servers.TimelineEntry, len(detail.Timeline))
	for i, entry := range detail.Timeline {
		timeline[i] = servers.TimelineEntry{
			Status:    servers.OrderStatus(entry.Status.String()),
			Timestamp: entry.Timestamp,
			Note:      optionalString(entry.Note),
		}
	}

	response := servers.OrderDetail{
		Id:            detail.ID.Bytes(),
		Reference:     detail.Reference,
		CustomerName:  detail.CustomerName,
		CustomerPhone: optionalString(detail.CustomerPhone),
		Address:       detail.Address,
		Status:        servers.OrderStatus(detail.Status.String()),
		CashDue:       detail.CashDue,
		CashCollected: detail.CashCollected,
		Timeline:      timeline,
	}
	if detail.AssignedDriverID != nil {
		raw := detail.AssignedDriverID.Bytes()
		response.AssignedDriverId = &raw
	}
	return ctx.JSON(http.StatusOK, response)
}

// AssignOrder handles POST /api/v1/orders/{orderId}/assign.
func (s *Server) AssignOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.AssignOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	driverID, err := kernel.UUIDFromBytes(body.DriverId[:])
	if err != nil {
		return badRequest(ctx, "invalid driver_id")
	}

	cmd, err := commands.NewAssignOrderCommand(id, driverID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.handlers.AssignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/status.
func (s *Server) TransitionOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.TransitionOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	target, err := order.StatusFromString(string(body.Status))
	if err != nil {
		return badRequest(ctx, "invalid status")
	}

	var cashDelta int64
	if body.CashDelta != nil {
		cashDelta = *body.CashDelta
	}

	cmd, err := commands.NewTransitionOrderCommand(id, target, cashDelta, stringValue(body.Note))
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseOrder handles POST /api/v1/orders/{orderId}/release.
func (s *Server) ReleaseOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewReleaseOrderCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.handlers.ReleaseOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	roster, err := s.handlers.GetDrivers.Handle(ctx.Request().Context(), queries.NewGetDriversQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Driver, len(roster))
	for i, entry := range roster {
		wire := servers.Driver{
			Id:               entry.ID.Bytes(),
			Name:             entry.Name,
			VehiclePlate:     entry.VehiclePlate,
			Phone:            optionalString(entry.Phone),
			Activity:         servers.DriverActivity(entry.Activity.String()),
			ActiveOrderCount: entry.ActiveOrderCount,
		}
		if entry.LastFix != nil {
			wire.LastFix = &servers.LocationFix{
				Latitude:   entry.LastFix.Latitude,
				Longitude:  entry.LastFix.Longitude,
				ReportedAt: entry.LastFix.ReportedAt,
			}
		}
		response[i] = wire
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body servers.NewDriver
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateDriverCommand(body.Name, body.VehiclePlate, stringValue(body.Phone))
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.handlers.CreateDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Driver{
		Id:               created.ID().Bytes(),
		Name:             created.Name(),
		VehiclePlate:     created.VehiclePlate(),
		Phone:            optionalString(created.Phone()),
		Activity:         servers.DriverActivity(created.Activity().String()),
		ActiveOrderCount: 0,
	})
}

// ReportDriverLocation handles POST /api/v1/drivers/{driverId}/location.
func (s *Server) ReportDriverLocation(ctx echo.Context, driverId openapi_types.UUID) error {
	var body servers.LocationReport
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromBytes(driverId[:])
	if err != nil {
		return badRequest(ctx, "invalid driver id")
	}

	cmd, err := commands.NewReportLocationCommand(id, body.Latitude, body.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.handlers.ReportLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	wire := servers.Driver{
		Id:               updated.ID().Bytes(),
		Name:             updated.Name(),
		VehiclePlate:     updated.VehiclePlate(),
		Phone:            optionalString(updated.Phone()),
		Activity:         servers.DriverActivity(updated.Activity().String()),
		ActiveOrderCount: len(updated.ActiveOrderIDs()),
	}
	if fix := updated.LastFix(); fix != nil {
		wire.LastFix = &servers.LocationFix{
			Latitude:   fix.Location().Latitude(),
			Longitude:  fix.Location().Longitude(),
			ReportedAt: fix.ReportedAt(),
		}
	}
	return ctx.JSON(http.StatusOK, wire)
}

// DispatchOrder handles POST /api/v1/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	cmd := commands.NewDispatchPendingOrderCommand()
	if err := s.handlers.Dispatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetCashHandovers handles GET /api/v1/cash-handovers.
func (s *Server) GetCashHandovers(ctx echo.Context, params servers.GetCashHandoversParams) error {
	var driverID *kernel.UUID
	if params.DriverId != nil {
		id, err := kernel.UUIDFromBytes((*params.DriverId)[:])
		if err != nil {
			return badRequest(ctx, "invalid driver_id")
		}
		driverID = &id
	}

	var status *cash.Status
	if params.Status != nil {
		parsed, err := cash.StatusFromString(string(*params.Status))
		if err != nil {
			return badRequest(ctx, "invalid status")
		}
		status = &parsed
	}

	query, err := queries.NewGetHandoversQuery(driverID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	worklist, err := s.handlers.GetHandovers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.CashHandover, len(worklist))
	for i, entry := range worklist {
		response[i] = servers.CashHandover{
			Id:         entry.ID.Bytes(),
			DriverId:   entry.DriverID.Bytes(),
			Amount:     entry.Amount,
			Notes:      optionalString(entry.Notes),
			ReportedAt: entry.ReportedAt,
			Status:     servers.HandoverStatus(entry.Status.String()),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// RegisterCashHandover handles POST /api/v1/cash-handovers.
func (s *Server) RegisterCashHandover(ctx echo.Context) error {
	var body servers.NewCashHandover
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(body.DriverId[:])
	if err != nil {
		return badRequest(ctx, "invalid driver_id")
	}

	cmd, err := commands.NewRegisterHandoverCommand(driverID, body.Amount, stringValue(body.Notes))
	if err != nil {
		return writeError(ctx, err)
	}

	registered, err := s.handlers.RegisterHandover.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CashHandover{
		Id:         registered.ID().Bytes(),
		DriverId:   registered.DriverID().Bytes(),
		Amount:     registered.Amount().Amount(),
		Notes:      optionalString(registered.Notes()),
		ReportedAt: registered.ReportedAt(),
		Status:     servers.HandoverStatus(registered.Status().String()),
	})
}

// ResolveCashHandover handles PATCH /api/v1/cash-handovers/{handoverId}.
func (s *Server) ResolveCashHandover(ctx echo.Context, handoverId openapi_types.UUID) error {
	var body servers.ResolveCashHandoverRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromBytes(handoverId[:])
	if err != nil {
		return badRequest(ctx, "invalid handover id")
	}
	outcome, err := cash.StatusFromString(string(body.Status))
	if err != nil {
		return badRequest(ctx, "invalid status")
	}

	cmd, err := commands.NewResolveHandoverCommand(id, outcome)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.handlers.ResolveHandover.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func toWireOrder(summary queries.GetOrdersQueryResponse) servers.Order {
	wire := servers.Order{
		Id:            summary.ID.Bytes(),
		Reference:     summary.Reference,
		CustomerName:  summary.CustomerName,
		Address:       summary.Address,
		Status:        servers.OrderStatus(summary.Status.String()),
		CashDue:       summary.CashDue,
		CashCollected: summary.CashCollected,
		CreatedAt:     summary.CreatedAt,
	}
	if summary.AssignedDriverID != nil {
		raw := summary.AssignedDriverID.Bytes()
		wire.AssignedDriverId = &raw
	}
	return wire
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
