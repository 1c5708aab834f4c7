package parcel

import (
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// EventStatus is the status recorded on a tracking event.
//
// It is a superset of the parcel lifecycle statuses: every Status has an
// EventStatus counterpart, plus a small set of administrative pseudo-statuses
// that never appear as a parcel status. Keeping the two types separate lets
// the timeline record events like "Unassigned" while Parcel.Status stays
// strictly enumerated.
type EventStatus string

// EventStatusUnassigned is recorded when an agent is removed from a parcel.
// It is a pseudo-status: a parcel can never be in this state, but its
// timeline can show that the unassignment happened.
const EventStatusUnassigned EventStatus = "Unassigned"

// EventStatusOf converts a lifecycle status into its event representation.
func EventStatusOf(s Status) EventStatus {
	return EventStatus(s.String())
}

// ErrTrackingEventIsNotConstructed is returned when attempting to use an
// improperly initialized TrackingEvent.
var ErrTrackingEventIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking event must be created via NewTrackingEvent or RestoreTrackingEvent")

// TrackingEvent is an immutable timestamped record of a status or location
// change. The ordered sequence of tracking events forms the parcel's audit
// timeline. Events are append-only: once recorded they are never modified
// or removed.
type TrackingEvent struct {
	status     EventStatus
	location   *kernel.GeoPoint
	dispatchID *string
	timestamp  time.Time

	guard guard.ConstructorGuard
}

// NewTrackingEvent creates a tracking event with the given status, optional
// location snapshot, optional dispatch correlation id, and event time.
func NewTrackingEvent(status EventStatus, location *kernel.GeoPoint, dispatchID *string, timestamp time.Time) (TrackingEvent, error) {
	if status == "" {
		return TrackingEvent{}, errs.NewValueIsRequiredError("event status")
	}
	if timestamp.IsZero() {
		return TrackingEvent{}, errs.NewValueIsRequiredError("event timestamp")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return TrackingEvent{}, err
		}
	}

	return TrackingEvent{
		status:     status,
		location:   location,
		dispatchID: dispatchID,
		timestamp:  timestamp,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreTrackingEvent reconstructs an event from persistence.
// It applies the same validation rules as NewTrackingEvent.
func RestoreTrackingEvent(status EventStatus, location *kernel.GeoPoint, dispatchID *string, timestamp time.Time) (TrackingEvent, error) {
	return NewTrackingEvent(status, location, dispatchID, timestamp)
}

// Validate checks if the event was properly constructed.
func (e TrackingEvent) Validate() error {
	return e.guard.Validate(ErrTrackingEventIsNotConstructed)
}

// Status returns the status this event recorded.
func (e TrackingEvent) Status() EventStatus {
	return e.status
}

// Location returns the location snapshot at event time, or nil if none was known.
func (e TrackingEvent) Location() *kernel.GeoPoint {
	return e.location
}

// DispatchID returns the optional correlation id to an external dispatch run.
// The core never interprets this value, it is passed through from the caller.
func (e TrackingEvent) DispatchID() *string {
	return e.dispatchID
}

// Timestamp returns the event creation time.
func (e TrackingEvent) Timestamp() time.Time {
	return e.timestamp
}
