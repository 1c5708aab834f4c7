// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. It implements the repository pattern for the parcel
// aggregate, converting between the domain model and the relational schema.
package parcelrepo

import (
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// The tracking number carries a unique index; collisions surface to the caller
// as conflicts so a fresh number can be generated.
type ParcelDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber  string     `gorm:"uniqueIndex;size:32"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	AgentID         *uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress   string
	DeliveryAddress string
	ParcelType      string
	PaymentType     string      `gorm:"size:16"`
	ParcelSize      string      `gorm:"size:16"`
	Status          int         `gorm:"index"`
	Pickup          GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery        GeoPointDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Current         GeoPointDTO `gorm:"embedded;embeddedPrefix:current_"`
	CreatedAt       time.Time   `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// TrackingEventDTO represents one timeline entry. The bigserial primary key
// preserves insertion order, which is the canonical event order.
type TrackingEventDTO struct {
	ID         int64       `gorm:"primaryKey;autoIncrement"`
	ParcelID   uuid.UUID   `gorm:"type:uuid;index"`
	Status     string      `gorm:"size:32"`
	Location   GeoPointDTO `gorm:"embedded;embeddedPrefix:location_"`
	DispatchID *string
	CreatedAt  time.Time
}

// TableName specifies the database table name for tracking events.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

// GeoPointDTO represents embedded WGS84 coordinates.
// Both fields are nil when the coordinate pair is unknown.
type GeoPointDTO struct {
	Lat *float64
	Lng *float64
}

// AgentDTO is the read model for delivery agents, joined into dispatcher
// listings. Agent records are managed by the identity service; this table is
// a local replica and never written by the parcel flow.
type AgentDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Phone string
}

// TableName specifies the database table name for agents.
func (AgentDTO) TableName() string {
	return "agents"
}

func geoToDTO(point *kernel.GeoPoint) GeoPointDTO {
	if point == nil {
		return GeoPointDTO{}
	}
	lat, lng := point.Lat(), point.Lng()
	return GeoPointDTO{Lat: &lat, Lng: &lng}
}

func geoFromDTO(dto GeoPointDTO) (*kernel.GeoPoint, error) {
	if dto.Lat == nil || dto.Lng == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// fromDomain converts a parcel aggregate to its database representation.
// Timeline events are mapped separately because they are append-only.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var agentID *uuid.UUID
	if id := aggregate.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return ParcelDTO{
		ID:              aggregate.ID().Bytes(),
		TrackingNumber:  aggregate.TrackingNumber().String(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		AgentID:         agentID,
		PickupAddress:   aggregate.PickupAddress(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		ParcelType:      aggregate.ParcelType(),
		PaymentType:     string(aggregate.PaymentType()),
		ParcelSize:      string(aggregate.ParcelSize()),
		Status:          int(aggregate.Status()),
		Pickup:          geoToDTO(aggregate.PickupPoint()),
		Delivery:        geoToDTO(aggregate.DeliveryPoint()),
		Current:         geoToDTO(aggregate.CurrentLocation()),
	}
}

func eventFromDomain(parcelID uuid.UUID, event parcel.TrackingEvent) TrackingEventDTO {
	return TrackingEventDTO{
		ParcelID:   parcelID,
		Status:     string(event.Status()),
		Location:   geoToDTO(event.Location()),
		DispatchID: event.DispatchID(),
		CreatedAt:  event.Timestamp(),
	}
}

// toDomain converts database DTOs back to a parcel aggregate.
// The event slice must already be ordered by insertion.
func toDomain(dto ParcelDTO, eventDTOs []TrackingEventDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingNumber, err := parcel.TrackingNumberFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	paymentType, err := parcel.PaymentTypeFromString(dto.PaymentType)
	if err != nil {
		return nil, err
	}

	parcelSize, err := parcel.ParcelSizeFromString(dto.ParcelSize)
	if err != nil {
		return nil, err
	}

	pickup, err := geoFromDTO(dto.Pickup)
	if err != nil {
		return nil, err
	}
	delivery, err := geoFromDTO(dto.Delivery)
	if err != nil {
		return nil, err
	}
	current, err := geoFromDTO(dto.Current)
	if err != nil {
		return nil, err
	}

	events := make([]parcel.TrackingEvent, 0, len(eventDTOs))
	for _, eventDTO := range eventDTOs {
		location, locErr := geoFromDTO(eventDTO.Location)
		if locErr != nil {
			return nil, locErr
		}

		event, eventErr := parcel.RestoreTrackingEvent(
			parcel.EventStatus(eventDTO.Status), location, eventDTO.DispatchID, eventDTO.CreatedAt)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return parcel.RestoreParcel(id, trackingNumber, customerID, agentID,
		dto.PickupAddress, dto.DeliveryAddress, dto.ParcelType,
		paymentType, parcelSize, parcel.Status(dto.Status),
		pickup, delivery, current, events)
}
