package parcel

import (
	"fmt"

	"courier/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// The lifecycle is a flat enumeration, not a transition graph: any authorized
// actor may set any valid status. Delivered, Failed and Return are terminal
// by convention only - the model does not hard-block transitions out of them,
// policy is enforced solely by actor role (see services.TransitionPolicy).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Booked is the initial status assigned at parcel creation.
	Booked

	// PickedUp indicates an agent has been assigned and the parcel collected from the sender.
	PickedUp

	// SentToWarehouse indicates the parcel is on its way to a warehouse.
	SentToWarehouse

	// WarehouseReceived indicates a warehouse has received the parcel.
	WarehouseReceived

	// InTransit indicates the parcel is moving between facilities.
	InTransit

	// HubReceived indicates the destination hub has received the parcel.
	HubReceived

	// AgentAssigned indicates a delivery agent has been designated for the final leg.
	AgentAssigned

	// CollectedByAgent indicates the delivery agent has collected the parcel from the hub.
	CollectedByAgent

	// Delivered indicates successful delivery. Terminal by convention.
	Delivered

	// Failed indicates a failed delivery attempt. Terminal by convention.
	Failed

	// Return indicates the parcel is being returned to the sender. Terminal by convention.
	Return
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		Booked:            "Booked",
		PickedUp:          "Picked Up",
		SentToWarehouse:   "Sent To Warehouse",
		WarehouseReceived: "Warehouse Received",
		InTransit:         "In Transit",
		HubReceived:       "Hub Received",
		AgentAssigned:     "Agent Assigned",
		CollectedByAgent:  "Collected By Agent",
		Delivered:         "Delivered",
		Failed:            "Failed",
		Return:            "Return",
	}
}

// StatusFromString parses a status from its human-readable representation,
// e.g. "Picked Up". Returns an error for unknown values, including "Unknown".
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, e.g. "Picked Up".
// Returns "Unknown" for invalid status values.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
