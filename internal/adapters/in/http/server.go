// Package http exposes the courier service over a REST API.
// It translates HTTP requests into commands and queries and maps domain
// errors onto status codes. Authentication is terminated upstream; the
// gateway forwards the verified actor in the X-Actor-Id and X-Actor-Role
// headers.
package http

import (
	"errors"
	"net/http"
	"time"

	"courier/internal/adapters/out/report"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/services"
	"courier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Forwarded identity headers set by the API gateway.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Server wires HTTP endpoints to application use cases.
type Server struct {
	createParcelHandler   commands.CreateParcelCommandHandler
	updateStatusHandler   commands.UpdateParcelStatusCommandHandler
	assignAgentHandler    commands.AssignAgentCommandHandler
	unassignAgentHandler  commands.UnassignAgentCommandHandler
	updateLocationHandler commands.UpdateLocationCommandHandler

	trackParcelHandler        queries.TrackParcelQueryHandler
	getParcelsHandler         queries.GetParcelsQueryHandler
	getCustomerParcelsHandler queries.GetCustomerParcelsQueryHandler
	getCurrentLocationHandler queries.GetCurrentLocationQueryHandler
	getDistanceHandler        queries.GetDistanceQueryHandler
	getDailyMetricsHandler    queries.GetDailyMetricsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	updateStatusHandler commands.UpdateParcelStatusCommandHandler,
	assignAgentHandler commands.AssignAgentCommandHandler,
	unassignAgentHandler commands.UnassignAgentCommandHandler,
	updateLocationHandler commands.UpdateLocationCommandHandler,
	trackParcelHandler queries.TrackParcelQueryHandler,
	getParcelsHandler queries.GetParcelsQueryHandler,
	getCustomerParcelsHandler queries.GetCustomerParcelsQueryHandler,
	getCurrentLocationHandler queries.GetCurrentLocationQueryHandler,
	getDistanceHandler queries.GetDistanceQueryHandler,
	getDailyMetricsHandler queries.GetDailyMetricsQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:       createParcelHandler,
		updateStatusHandler:       updateStatusHandler,
		assignAgentHandler:        assignAgentHandler,
		unassignAgentHandler:      unassignAgentHandler,
		updateLocationHandler:     updateLocationHandler,
		trackParcelHandler:        trackParcelHandler,
		getParcelsHandler:         getParcelsHandler,
		getCustomerParcelsHandler: getCustomerParcelsHandler,
		getCurrentLocationHandler: getCurrentLocationHandler,
		getDistanceHandler:        getDistanceHandler,
		getDailyMetricsHandler:    getDailyMetricsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
// The tracking endpoint is public; everything else expects the gateway's
// actor headers.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/track/:trackingNumber", s.TrackParcel)

	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels", s.GetParcels)
	api.GET("/parcels/export", s.ExportParcels)
	api.GET("/parcels/metrics/daily", s.GetDailyMetrics)
	api.GET("/parcels/my", s.GetMyParcels)
	api.PATCH("/parcels/:id/status", s.UpdateStatus)
	api.PATCH("/parcels/:id/assign", s.AssignAgent)
	api.PATCH("/parcels/:id/unassign", s.UnassignAgent)
	api.PATCH("/parcels/:id/location", s.UpdateLocation)
	api.GET("/parcels/:id/location", s.GetCurrentLocation)
	api.GET("/parcels/:id/distance", s.GetDistance)
}

// CreateParcel handles POST /api/v1/parcels - books a new parcel for the
// calling customer.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var req CreateParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	customerID, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	paymentType, err := parcel.PaymentTypeFromString(req.PaymentType)
	if err != nil {
		return writeError(ctx, err)
	}
	parcelSize, err := parcel.ParcelSizeFromString(req.ParcelSize)
	if err != nil {
		return writeError(ctx, err)
	}

	pickupPoint, err := geoPointFromDTO(req.PickupPoint, "pickupPoint")
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryPoint, err := geoPointFromDTO(req.DeliveryPoint, "deliveryPoint")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), customerID,
		req.PickupAddress, req.DeliveryAddress, req.ParcelType,
		paymentType, parcelSize, pickupPoint, deliveryPoint)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, parcelToResponse(p))
}

// TrackParcel handles GET /api/v1/track/:trackingNumber - the public
// tracking view.
func (s *Server) TrackParcel(ctx echo.Context) error {
	trackingNumber, err := parcel.TrackingNumberFromString(ctx.Param("trackingNumber"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewTrackParcelQuery(trackingNumber)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackingToResponse(view))
}

// UpdateStatus handles PATCH /api/v1/parcels/:id/status - moves a parcel
// through its lifecycle on behalf of the calling actor.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	var req UpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	role, err := actorRole(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	newStatus, err := parcel.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	eventLocation, err := geoPointFromDTO(req.EventLocation, "eventLocation")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(parcelID, role, newStatus, eventLocation, req.DispatchID)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(p))
}

// AssignAgent handles PATCH /api/v1/parcels/:id/assign - dispatches a parcel
// to an agent. Admin only.
func (s *Server) AssignAgent(ctx echo.Context) error {
	if err := requireAdmin(ctx); err != nil {
		return writeError(ctx, err)
	}

	var req AssignAgentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("agentId", err))
	}

	cmd, err := commands.NewAssignAgentCommand(parcelID, agentID)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.assignAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(p))
}

// UnassignAgent handles PATCH /api/v1/parcels/:id/unassign - withdraws a
// parcel from its agent. Admin only.
func (s *Server) UnassignAgent(ctx echo.Context) error {
	if err := requireAdmin(ctx); err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUnassignAgentCommand(parcelID)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.unassignAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(p))
}

// UpdateLocation handles PATCH /api/v1/parcels/:id/location - records a
// courier location ping.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	var req UpdateLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(parcelID, point)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(p))
}

// GetParcels handles GET /api/v1/parcels - the dispatcher listing.
// Admin only. The optional assigned query parameter filters by assignment.
func (s *Server) GetParcels(ctx echo.Context) error {
	if err := requireAdmin(ctx); err != nil {
		return writeError(ctx, err)
	}

	query, err := parcelListingQuery(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcels, err := s.getParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, listingToResponse(parcels))
}

// ExportParcels handles GET /api/v1/parcels/export - the listing as a CSV
// download. Admin only.
func (s *Server) ExportParcels(ctx echo.Context) error {
	if err := requireAdmin(ctx); err != nil {
		return writeError(ctx, err)
	}

	query, err := parcelListingQuery(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcels, err := s.getParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentType, "text/csv")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="parcels.csv"`)
	ctx.Response().WriteHeader(http.StatusOK)
	return report.WriteParcelsCSV(ctx.Response(), parcels)
}

// GetMyParcels handles GET /api/v1/parcels/my - the calling customer's
// booking history.
func (s *Server) GetMyParcels(ctx echo.Context) error {
	customerID, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetCustomerParcelsQuery(customerID)
	if err != nil {
		return writeError(ctx, err)
	}

	parcels, err := s.getCustomerParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, customerParcelsToResponse(parcels))
}

// GetCurrentLocation handles GET /api/v1/parcels/:id/location.
func (s *Server) GetCurrentLocation(ctx echo.Context) error {
	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetCurrentLocationQuery(parcelID)
	if err != nil {
		return writeError(ctx, err)
	}

	location, err := s.getCurrentLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := struct {
		ParcelID string       `json:"parcelId"`
		Point    *GeoPointDTO `json:"point,omitempty"`
	}{ParcelID: location.ParcelID.String(), Point: geoPointToDTO(location.Point)}

	return ctx.JSON(http.StatusOK, resp)
}

// GetDistance handles GET /api/v1/parcels/:id/distance - remaining road
// distance to the delivery point.
func (s *Server) GetDistance(ctx echo.Context) error {
	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDistanceQuery(parcelID)
	if err != nil {
		return writeError(ctx, err)
	}

	distance, err := s.getDistanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := struct {
		ParcelID string `json:"parcelId"`
		Distance string `json:"distance"`
	}{ParcelID: distance.ParcelID.String(), Distance: distance.Distance}

	return ctx.JSON(http.StatusOK, resp)
}

// GetDailyMetrics handles GET /api/v1/parcels/metrics/daily - dashboard
// counters for one day. Admin only. The optional date parameter is
// YYYY-MM-DD, defaulting to today (UTC).
func (s *Server) GetDailyMetrics(ctx echo.Context) error {
	if err := requireAdmin(ctx); err != nil {
		return writeError(ctx, err)
	}

	day := time.Now().UTC()
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("date", err))
		}
		day = parsed
	}

	metrics, err := s.getDailyMetricsHandler.Handle(ctx.Request().Context(),
		queries.NewGetDailyMetricsQuery(day))
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, metricsToResponse(metrics))
}

func parcelListingQuery(ctx echo.Context) (queries.GetParcelsQuery, error) {
	var assigned *bool
	switch raw := ctx.QueryParam("assigned"); raw {
	case "":
	case "true":
		v := true
		assigned = &v
	case "false":
		v := false
		assigned = &v
	default:
		return queries.GetParcelsQuery{}, errs.NewValueIsInvalidError("assigned")
	}
	return queries.NewGetParcelsQuery(assigned), nil
}

func parcelIDParam(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(HeaderActorID)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(HeaderActorID)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(HeaderActorID, err)
	}
	return id, nil
}

func actorRole(ctx echo.Context) (services.Role, error) {
	return services.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
}

func requireAdmin(ctx echo.Context) error {
	role, err := actorRole(ctx)
	if err != nil {
		return err
	}
	if role != services.RoleAdmin {
		return errs.NewForbiddenError(string(role), "access admin endpoints")
	}
	return nil
}

func geoPointFromDTO(dto *GeoPointDTO, paramName string) (*kernel.GeoPoint, error) {
	if dto == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return &point, nil
}

// writeError maps domain errors onto HTTP status codes with a uniform body.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrExternalService):
		code = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
