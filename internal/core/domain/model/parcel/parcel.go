package parcel

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
// through the NewParcel or RestoreParcel factory methods.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

// ErrParcelHasNoEvents is returned when restoring a parcel without its
// creation event. Every parcel carries at least one tracking event for its
// entire life.
var ErrParcelHasNoEvents = errors.New("parcel must have at least one tracking event")

// Parcel is the aggregate root of the shipment domain. It owns the parcel's
// identity, lifecycle status, location coordinates, and the append-only
// tracking event timeline.
//
// Invariants:
//   - A parcel always has at least one tracking event (the creation event).
//   - The current location is a single owned field; there is no separately
//     maintained duplicate to keep in sync.
//   - Tracking events are append-only; stored order is insertion order.
//   - Exactly one event is appended per lifecycle mutation.
//
// The aggregate does not enforce a status transition graph: the lifecycle is
// a flat enum and any status can follow any other. Which actors may request
// which statuses is decided by services.TransitionPolicy before the mutation
// reaches the aggregate.
type Parcel struct {
	id             kernel.UUID
	trackingNumber TrackingNumber
	customerID     kernel.UUID
	agentID        *kernel.UUID

	pickupAddress   string
	deliveryAddress string
	parcelType      string
	paymentType     PaymentType
	parcelSize      ParcelSize

	status Status

	pickupPoint   *kernel.GeoPoint
	deliveryPoint *kernel.GeoPoint
	currentPoint  *kernel.GeoPoint

	events          []TrackingEvent
	committedEvents int

	isConstructed bool
}

// NewParcel creates a freshly booked parcel. A tracking number is generated,
// status is set to Booked, the current location starts at the pickup
// coordinates (when known), and the creation event is appended to the
// timeline with the provided time.
func NewParcel(
	id kernel.UUID,
	customerID kernel.UUID,
	pickupAddress string,
	deliveryAddress string,
	parcelType string,
	paymentType PaymentType,
	parcelSize ParcelSize,
	pickupPoint *kernel.GeoPoint,
	deliveryPoint *kernel.GeoPoint,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		trackingNumber: NewTrackingNumber(),
		status:         Booked,
		isConstructed:  true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCustomerID(customerID),
		p.setPickupAddress(pickupAddress),
		p.setDeliveryAddress(deliveryAddress),
		p.setParcelType(parcelType),
		p.setPaymentType(paymentType),
		p.setParcelSize(parcelSize),
		p.setPickupPoint(pickupPoint),
		p.setDeliveryPoint(deliveryPoint),
	); err != nil {
		return nil, err
	}

	p.currentPoint = p.pickupPoint

	if err := p.appendEvent(EventStatusOf(Booked), p.pickupPoint, nil, now); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a parcel aggregate from persistence.
// The event slice must contain the full stored timeline in insertion order,
// creation event included.
func RestoreParcel(
	id kernel.UUID,
	trackingNumber TrackingNumber,
	customerID kernel.UUID,
	agentID *kernel.UUID,
	pickupAddress string,
	deliveryAddress string,
	parcelType string,
	paymentType PaymentType,
	parcelSize ParcelSize,
	status Status,
	pickupPoint *kernel.GeoPoint,
	deliveryPoint *kernel.GeoPoint,
	currentPoint *kernel.GeoPoint,
	events []TrackingEvent,
) (*Parcel, error) {
	p := &Parcel{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setCustomerID(customerID),
		p.setPickupAddress(pickupAddress),
		p.setDeliveryAddress(deliveryAddress),
		p.setParcelType(parcelType),
		p.setPaymentType(paymentType),
		p.setParcelSize(parcelSize),
		p.setStatus(status),
		p.setPickupPoint(pickupPoint),
		p.setDeliveryPoint(deliveryPoint),
	); err != nil {
		return nil, err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return nil, err
		}
		agent := *agentID
		p.agentID = &agent
	}

	if currentPoint != nil {
		if err := currentPoint.Validate(); err != nil {
			return nil, err
		}
		pt := *currentPoint
		p.currentPoint = &pt
	}

	if len(events) == 0 {
		return nil, ErrParcelHasNoEvents
	}
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return nil, err
		}
	}
	p.events = make([]TrackingEvent, len(events))
	copy(p.events, events)
	p.committedEvents = len(events)

	return p, nil
}

// Validate ensures the Parcel instance was properly constructed through a factory method.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the public tracking number.
func (p *Parcel) TrackingNumber() TrackingNumber {
	return p.trackingNumber
}

// CustomerID returns the owning customer's identifier.
func (p *Parcel) CustomerID() kernel.UUID {
	return p.customerID
}

// AgentID returns the assigned agent's identifier, or nil while unassigned.
func (p *Parcel) AgentID() *kernel.UUID {
	return p.agentID
}

// PickupAddress returns the free-text pickup address.
func (p *Parcel) PickupAddress() string {
	return p.pickupAddress
}

// DeliveryAddress returns the free-text delivery address.
func (p *Parcel) DeliveryAddress() string {
	return p.deliveryAddress
}

// ParcelType returns the free-text parcel category.
func (p *Parcel) ParcelType() string {
	return p.parcelType
}

// PaymentType returns the payment arrangement, immutable after creation.
func (p *Parcel) PaymentType() PaymentType {
	return p.paymentType
}

// ParcelSize returns the size category.
func (p *Parcel) ParcelSize() ParcelSize {
	return p.parcelSize
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// PickupPoint returns the pickup coordinates, or nil if unknown.
func (p *Parcel) PickupPoint() *kernel.GeoPoint {
	return p.pickupPoint
}

// DeliveryPoint returns the delivery coordinates, or nil if unknown.
func (p *Parcel) DeliveryPoint() *kernel.GeoPoint {
	return p.deliveryPoint
}

// CurrentLocation returns the latest known coordinates, or nil if unknown.
// This is the single owned "current" field; there is no duplicated copy.
func (p *Parcel) CurrentLocation() *kernel.GeoPoint {
	return p.currentPoint
}

// Events returns a copy of the full tracking timeline in stored order.
func (p *Parcel) Events() []TrackingEvent {
	events := make([]TrackingEvent, len(p.events))
	copy(events, p.events)
	return events
}

// UncommittedEvents returns the events appended since the aggregate was
// loaded (or created). The repository persists exactly these on save.
func (p *Parcel) UncommittedEvents() []TrackingEvent {
	events := make([]TrackingEvent, len(p.events)-p.committedEvents)
	copy(events, p.events[p.committedEvents:])
	return events
}

// MarkEventsCommitted marks all appended events as persisted.
// Called by the repository after a successful save.
func (p *Parcel) MarkEventsCommitted() {
	p.committedEvents = len(p.events)
}

// ChangeStatus sets a new lifecycle status and appends exactly one tracking
// event recording it. The event location is resolved by priority: the
// explicit eventLocation argument, then the parcel's current location, then
// the pickup coordinates; the event carries no location if all are unknown.
//
// No reachability check is performed between the old and new status.
// Duplicate calls append duplicate events; there is no idempotency key.
func (p *Parcel) ChangeStatus(newStatus Status, eventLocation *kernel.GeoPoint, dispatchID *string, now time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if eventLocation != nil {
		if err := eventLocation.Validate(); err != nil {
			return err
		}
	}

	loc := eventLocation
	if loc == nil {
		loc = p.currentPoint
	}
	if loc == nil {
		loc = p.pickupPoint
	}

	if err := p.appendEvent(EventStatusOf(newStatus), loc, dispatchID, now); err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Assign binds an agent to the parcel and forces the status to Picked Up,
// regardless of the parcel's prior state. This is a deliberate unconditional
// overwrite, not a guarded transition: assigning a parcel that is already
// mid-transit resets its status. One tracking event is appended.
func (p *Parcel) Assign(agentID kernel.UUID, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	loc := p.currentPoint
	if loc == nil {
		loc = p.pickupPoint
	}

	if err := p.appendEvent(EventStatusOf(PickedUp), loc, nil, now); err != nil {
		return err
	}

	p.agentID = &agentID
	p.status = PickedUp
	return nil
}

// Unassign removes the agent and forces the status back to Booked regardless
// of event history - a deliberate manual override. The timeline records the
// "Unassigned" pseudo-status event.
func (p *Parcel) Unassign(now time.Time) error {
	if err := p.appendEvent(EventStatusUnassigned, p.currentPoint, nil, now); err != nil {
		return err
	}

	p.agentID = nil
	p.status = Booked
	return nil
}

// UpdateCurrentLocation records the latest known coordinates.
// Location updates do not append tracking events.
func (p *Parcel) UpdateCurrentLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	p.currentPoint = &point
	return nil
}

// RegenerateTrackingNumber replaces the tracking number with a fresh random
// one. Used by the store when creation hits a uniqueness collision.
func (p *Parcel) RegenerateTrackingNumber() {
	p.trackingNumber = NewTrackingNumber()
}

func (p *Parcel) appendEvent(status EventStatus, location *kernel.GeoPoint, dispatchID *string, now time.Time) error {
	event, err := NewTrackingEvent(status, location, dispatchID, now)
	if err != nil {
		return err
	}

	p.events = append(p.events, event)
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(number TrackingNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	p.trackingNumber = number
	return nil
}

func (p *Parcel) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	p.customerID = customerID
	return nil
}

func (p *Parcel) setPickupAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	p.pickupAddress = address
	return nil
}

func (p *Parcel) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	p.deliveryAddress = address
	return nil
}

func (p *Parcel) setParcelType(parcelType string) error {
	if parcelType == "" {
		return errs.NewValueIsRequiredError("parcelType")
	}
	p.parcelType = parcelType
	return nil
}

func (p *Parcel) setPaymentType(paymentType PaymentType) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}
	p.paymentType = paymentType
	return nil
}

func (p *Parcel) setParcelSize(size ParcelSize) error {
	if err := size.Validate(); err != nil {
		return err
	}
	p.parcelSize = size
	return nil
}

func (p *Parcel) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Parcel) setPickupPoint(point *kernel.GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}
	pt := *point
	p.pickupPoint = &pt
	return nil
}

func (p *Parcel) setDeliveryPoint(point *kernel.GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}
	pt := *point
	p.deliveryPoint = &pt
	return nil
}
