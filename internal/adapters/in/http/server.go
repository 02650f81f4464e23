// Package http exposes the application's use cases over a REST API.
//
// Caller identity arrives pre-authorized through the X-User-Id and
// X-User-Role headers; an upstream gateway is trusted to have performed
// authentication. Tracking endpoints need no identity because possession of
// the tracking token grants read access.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/pkg/errs"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipmentHandler      commands.CreateShipmentCommandHandler
	scheduleShipmentHandler    commands.ScheduleShipmentCommandHandler
	updateShipmentStateHandler commands.UpdateShipmentStateCommandHandler
	assignDriverHandler        commands.AssignDriverCommandHandler
	subscribeEventHandler      commands.SubscribeEventCommandHandler
	unsubscribeEventHandler    commands.UnsubscribeEventCommandHandler

	// Query handlers
	getShipmentHandler      queries.GetShipmentQueryHandler
	getShipmentsHandler     queries.GetShipmentsQueryHandler
	getSubscriptionsHandler queries.GetSubscriptionsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	scheduleShipmentHandler commands.ScheduleShipmentCommandHandler,
	updateShipmentStateHandler commands.UpdateShipmentStateCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	subscribeEventHandler commands.SubscribeEventCommandHandler,
	unsubscribeEventHandler commands.UnsubscribeEventCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getShipmentsHandler queries.GetShipmentsQueryHandler,
	getSubscriptionsHandler queries.GetSubscriptionsQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:      createShipmentHandler,
		scheduleShipmentHandler:    scheduleShipmentHandler,
		updateShipmentStateHandler: updateShipmentStateHandler,
		assignDriverHandler:        assignDriverHandler,
		subscribeEventHandler:      subscribeEventHandler,
		unsubscribeEventHandler:    unsubscribeEventHandler,
		getShipmentHandler:         getShipmentHandler,
		getShipmentsHandler:        getShipmentsHandler,
		getSubscriptionsHandler:    getSubscriptionsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.GetShipments)
	api.GET("/shipments/:tracking_id", s.GetShipment)
	api.POST("/shipments/:tracking_id/schedule", s.ScheduleShipment)
	api.POST("/shipments/:tracking_id/update_state", s.UpdateShipmentState)
	api.POST("/shipments/:tracking_id/assign_driver/:driver_id", s.AssignDriver)

	api.GET("/events", s.GetSubscriptions)
	api.PUT("/events", s.SubscribeEvent)
	api.DELETE("/events", s.UnsubscribeEvent)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateShipment handles POST /api/v1/shipments - registers a new shipment
// owned by the caller.
func (s *Server) CreateShipment(ctx echo.Context) error {
	ownerID, err := callerID(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, err)
	}

	var req CreateShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, errors.New("invalid request body"))
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		shipmentID, ownerID, req.Title,
		req.ReceiverName, req.ReceiverCountry, req.ReceiverAddress,
		req.Weight, location)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	if err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateShipmentResponse{ID: shipmentID.String()})
}

// GetShipments handles GET /api/v1/shipments - lists shipments visible to
// the caller per their role.
func (s *Server) GetShipments(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, err)
	}
	role, err := callerRole(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, err)
	}

	query, err := queries.NewGetShipmentsQuery(userID, role)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	rows, err := s.getShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	response := make([]ShipmentResponse, len(rows))
	for i, row := range rows {
		response[i] = toShipmentResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShipment handles GET /api/v1/shipments/:tracking_id - looks up one
// shipment by its tracking token.
func (s *Server) GetShipment(ctx echo.Context) error {
	row, err := s.resolveShipment(ctx)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(row))
}

// ScheduleShipment handles POST /api/v1/shipments/:tracking_id/schedule -
// moves a pending shipment to SCHEDULED and computes its estimated
// shipping date.
func (s *Server) ScheduleShipment(ctx echo.Context) error {
	row, err := s.resolveShipment(ctx)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	cmd, err := commands.NewScheduleShipmentCommand(row.ID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	if err = s.scheduleShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateShipmentState handles POST /api/v1/shipments/:tracking_id/update_state -
// applies one lifecycle transition and enqueues the owner's webhook
// notification when a subscription exists.
func (s *Server) UpdateShipmentState(ctx echo.Context) error {
	row, err := s.resolveShipment(ctx)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	var req UpdateShipmentStateRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, errors.New("invalid request body"))
	}

	target, err := shipment.ParseState(req.State)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewUpdateShipmentStateCommand(row.ID, target)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	if err = s.updateShipmentStateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/shipments/:tracking_id/assign_driver/:driver_id -
// attaches a driver reference to the shipment.
func (s *Server) AssignDriver(ctx echo.Context) error {
	row, err := s.resolveShipment(ctx)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewAssignDriverCommand(row.ID, driverID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetSubscriptions handles GET /api/v1/events - lists the caller's webhook
// subscriptions.
func (s *Server) GetSubscriptions(ctx echo.Context) error {
	ownerID, err := callerID(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, err)
	}

	query, err := queries.NewGetSubscriptionsQuery(ownerID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	rows, err := s.getSubscriptionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	response := make([]SubscriptionResponse, len(rows))
	for i, row := range rows {
		response[i] = toSubscriptionResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubscribeEvent handles PUT /api/v1/events - creates or replaces the
// caller's subscription for an event kind.
func (s *Server) SubscribeEvent(ctx echo.Context) error {
	ownerID, err := callerID(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, err)
	}

	var req SubscribeEventRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, errors.New("invalid request body"))
	}

	eventKind, err := subscription.ParseEventKind(req.EventKind)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	headers, err := subscription.ParseHeaders(string(req.Headers))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	maxRetry := subscription.DefaultMaxRetry
	if req.MaxRetry != nil {
		maxRetry = *req.MaxRetry
	}

	cmd, err := commands.NewSubscribeEventCommand(ownerID, eventKind, req.URL, headers, maxRetry)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	if err = s.subscribeEventHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnsubscribeEvent handles DELETE /api/v1/events - removes the caller's
// subscription for the event kind given in the event_kind query parameter.
func (s *Server) UnsubscribeEvent(ctx echo.Context) error {
	ownerID, err := callerID(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, err)
	}

	eventKind, err := subscription.ParseEventKind(ctx.QueryParam("event_kind"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewUnsubscribeEventCommand(ownerID, eventKind)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}

	if err = s.unsubscribeEventHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// resolveShipment translates the :tracking_id path parameter into the
// shipment row it identifies.
func (s *Server) resolveShipment(ctx echo.Context) (queries.ShipmentQueryResponse, error) {
	trackingID, err := kernel.TrackingIDFromString(ctx.Param("tracking_id"))
	if err != nil {
		return queries.ShipmentQueryResponse{}, err
	}

	query, err := queries.NewGetShipmentQuery(trackingID)
	if err != nil {
		return queries.ShipmentQueryResponse{}, err
	}

	return s.getShipmentHandler.Handle(ctx.Request().Context(), query)
}

func callerID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(headerUserID)
	if raw == "" {
		return kernel.UUID{}, errors.New("missing " + headerUserID + " header")
	}

	return kernel.UUIDFromString(raw)
}

func callerRole(ctx echo.Context) (queries.Role, error) {
	raw := ctx.Request().Header.Get(headerUserRole)
	if raw == "" {
		return "", errors.New("missing " + headerUserRole + " header")
	}

	return queries.ParseRole(raw)
}

func respondError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

// respondDomainError maps application errors onto HTTP status codes.
// Unknown shipments and subscriptions map to 404, illegal lifecycle
// transitions to 409, validation failures to 400, everything else to 500.
func respondDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respondError(ctx, http.StatusNotFound, err)
	case errors.Is(err, shipment.ErrInvalidTransition):
		return respondError(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respondError(ctx, http.StatusBadRequest, err)
	default:
		return respondError(ctx, http.StatusInternalServerError, err)
	}
}
