package http

import (
	"time"

	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPointDTO is a coordinate pair in request and response bodies.
type GeoPointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func geoPointToDTO(point *kernel.GeoPoint) *GeoPointDTO {
	if point == nil {
		return nil
	}
	return &GeoPointDTO{Lat: point.Lat(), Lng: point.Lng()}
}

// CreateParcelRequest is the booking request body.
type CreateParcelRequest struct {
	PickupAddress   string       `json:"pickupAddress"`
	DeliveryAddress string       `json:"deliveryAddress"`
	ParcelType      string       `json:"parcelType"`
	PaymentType     string       `json:"paymentType"`
	ParcelSize      string       `json:"parcelSize"`
	PickupPoint     *GeoPointDTO `json:"pickupPoint,omitempty"`
	DeliveryPoint   *GeoPointDTO `json:"deliveryPoint,omitempty"`
}

// UpdateStatusRequest is the status transition request body.
type UpdateStatusRequest struct {
	Status        string       `json:"status"`
	EventLocation *GeoPointDTO `json:"eventLocation,omitempty"`
	DispatchID    *string      `json:"dispatchId,omitempty"`
}

// AssignAgentRequest is the agent assignment request body.
type AssignAgentRequest struct {
	AgentID string `json:"agentId"`
}

// UpdateLocationRequest is the location ping request body.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackingEventResponse is one timeline entry in a parcel response.
type TrackingEventResponse struct {
	Status     string       `json:"status"`
	Location   *GeoPointDTO `json:"location,omitempty"`
	DispatchID *string      `json:"dispatchId,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}

// ParcelResponse is the full parcel representation returned by write
// endpoints.
type ParcelResponse struct {
	ID              string                  `json:"id"`
	TrackingNumber  string                  `json:"trackingNumber"`
	CustomerID      string                  `json:"customerId"`
	AgentID         *string                 `json:"agentId,omitempty"`
	Status          string                  `json:"status"`
	PaymentType     string                  `json:"paymentType"`
	ParcelSize      string                  `json:"parcelSize"`
	ParcelType      string                  `json:"parcelType"`
	PickupAddress   string                  `json:"pickupAddress"`
	DeliveryAddress string                  `json:"deliveryAddress"`
	PickupPoint     *GeoPointDTO            `json:"pickupPoint,omitempty"`
	DeliveryPoint   *GeoPointDTO            `json:"deliveryPoint,omitempty"`
	CurrentPoint    *GeoPointDTO            `json:"currentPoint,omitempty"`
	Events          []TrackingEventResponse `json:"events"`
}

func parcelToResponse(p *parcel.Parcel) ParcelResponse {
	var agentID *string
	if id := p.AgentID(); id != nil {
		s := id.String()
		agentID = &s
	}

	events := p.Events()
	eventDTOs := make([]TrackingEventResponse, 0, len(events))
	for _, event := range events {
		eventDTOs = append(eventDTOs, TrackingEventResponse{
			Status:     string(event.Status()),
			Location:   geoPointToDTO(event.Location()),
			DispatchID: event.DispatchID(),
			Timestamp:  event.Timestamp(),
		})
	}

	return ParcelResponse{
		ID:              p.ID().String(),
		TrackingNumber:  p.TrackingNumber().String(),
		CustomerID:      p.CustomerID().String(),
		AgentID:         agentID,
		Status:          p.Status().String(),
		PaymentType:     string(p.PaymentType()),
		ParcelSize:      string(p.ParcelSize()),
		ParcelType:      p.ParcelType(),
		PickupAddress:   p.PickupAddress(),
		DeliveryAddress: p.DeliveryAddress(),
		PickupPoint:     geoPointToDTO(p.PickupPoint()),
		DeliveryPoint:   geoPointToDTO(p.DeliveryPoint()),
		CurrentPoint:    geoPointToDTO(p.CurrentLocation()),
		Events:          eventDTOs,
	}
}

// ParcelListingItemResponse is one row of the dispatcher listing.
// Agent fields are null for unassigned parcels.
type ParcelListingItemResponse struct {
	ID              string    `json:"id"`
	TrackingNumber  string    `json:"trackingNumber"`
	CustomerID      string    `json:"customerId"`
	AgentID         *string   `json:"agentId,omitempty"`
	AgentName       *string   `json:"agentName,omitempty"`
	AgentPhone      *string   `json:"agentPhone,omitempty"`
	Status          string    `json:"status"`
	PaymentType     string    `json:"paymentType"`
	ParcelSize      string    `json:"parcelSize"`
	PickupAddress   string    `json:"pickupAddress"`
	DeliveryAddress string    `json:"deliveryAddress"`
	BookedAt        time.Time `json:"bookedAt"`
}

func listingToResponse(parcels []queries.GetParcelsQueryResponse) []ParcelListingItemResponse {
	items := make([]ParcelListingItemResponse, 0, len(parcels))
	for _, p := range parcels {
		var agentID *string
		if p.AgentID != nil {
			s := p.AgentID.String()
			agentID = &s
		}
		items = append(items, ParcelListingItemResponse{
			ID:              p.ID.String(),
			TrackingNumber:  p.TrackingNumber,
			CustomerID:      p.CustomerID.String(),
			AgentID:         agentID,
			AgentName:       p.AgentName,
			AgentPhone:      p.AgentPhone,
			Status:          p.Status,
			PaymentType:     p.PaymentType,
			ParcelSize:      p.ParcelSize,
			PickupAddress:   p.PickupAddress,
			DeliveryAddress: p.DeliveryAddress,
			BookedAt:        p.CreatedAt,
		})
	}
	return items
}

// CustomerParcelResponse is one row of a customer's booking history.
type CustomerParcelResponse struct {
	ID              string    `json:"id"`
	TrackingNumber  string    `json:"trackingNumber"`
	Status          string    `json:"status"`
	PaymentType     string    `json:"paymentType"`
	ParcelSize      string    `json:"parcelSize"`
	PickupAddress   string    `json:"pickupAddress"`
	DeliveryAddress string    `json:"deliveryAddress"`
	BookedAt        time.Time `json:"bookedAt"`
}

func customerParcelsToResponse(parcels []queries.GetCustomerParcelsQueryResponse) []CustomerParcelResponse {
	items := make([]CustomerParcelResponse, 0, len(parcels))
	for _, p := range parcels {
		items = append(items, CustomerParcelResponse{
			ID:              p.ID.String(),
			TrackingNumber:  p.TrackingNumber,
			Status:          p.Status,
			PaymentType:     p.PaymentType,
			ParcelSize:      p.ParcelSize,
			PickupAddress:   p.PickupAddress,
			DeliveryAddress: p.DeliveryAddress,
			BookedAt:        p.CreatedAt,
		})
	}
	return items
}

// DailyMetricsResponse holds the dashboard counters for one day.
type DailyMetricsResponse struct {
	Day         time.Time `json:"day"`
	Bookings    int       `json:"bookings"`
	Delivered   int       `json:"delivered"`
	Failed      int       `json:"failed"`
	CODBookings int       `json:"codBookings"`
}

func metricsToResponse(metrics queries.GetDailyMetricsQueryResponse) DailyMetricsResponse {
	return DailyMetricsResponse{
		Day:         metrics.Day,
		Bookings:    metrics.Bookings,
		Delivered:   metrics.Delivered,
		Failed:      metrics.Failed,
		CODBookings: metrics.CODBookings,
	}
}

// TrackedEventResponse is one timeline entry in the public tracking view,
// carrying the resolved place name.
type TrackedEventResponse struct {
	Status       string       `json:"status"`
	Location     *GeoPointDTO `json:"location,omitempty"`
	LocationName string       `json:"locationName"`
	DispatchID   *string      `json:"dispatchId,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}

// TrackingResponse is the public tracking view.
type TrackingResponse struct {
	TrackingNumber  string                 `json:"trackingNumber"`
	CurrentStatus   string                 `json:"currentStatus"`
	PickupAddress   string                 `json:"pickupAddress"`
	DeliveryAddress string                 `json:"deliveryAddress"`
	LastUpdated     time.Time              `json:"lastUpdated"`
	Events          []TrackedEventResponse `json:"events"`
}

func trackingToResponse(view queries.TrackParcelQueryResponse) TrackingResponse {
	events := make([]TrackedEventResponse, 0, len(view.Events))
	for _, event := range view.Events {
		var location *GeoPointDTO
		if event.Lat != nil && event.Lng != nil {
			location = &GeoPointDTO{Lat: *event.Lat, Lng: *event.Lng}
		}
		events = append(events, TrackedEventResponse{
			Status:       event.Status,
			Location:     location,
			LocationName: event.LocationName,
			DispatchID:   event.DispatchID,
			Timestamp:    event.Timestamp,
		})
	}

	return TrackingResponse{
		TrackingNumber:  view.TrackingNumber,
		CurrentStatus:   view.CurrentStatus,
		PickupAddress:   view.PickupAddress,
		DeliveryAddress: view.DeliveryAddress,
		LastUpdated:     view.LastUpdated,
		Events:          events,
	}
}
