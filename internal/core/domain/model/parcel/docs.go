// Package parcel contains the Parcel aggregate root and its associated value
// objects: lifecycle Status, TrackingEvent timeline entries, TrackingNumber,
// PaymentType and ParcelSize.
//
// The aggregate models the full delivery lifecycle of a shipped item, from
// booking through agent assignment, warehouse and hub handling, to terminal
// delivery outcomes. Every mutation appends an immutable tracking event,
// forming an auditable timeline that the tracking endpoint projects back to
// customers.
package parcel
