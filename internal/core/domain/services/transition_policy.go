package services

import (
	"fmt"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/errs"
)

// Role identifies the kind of actor requesting an operation.
// Roles are supplied by the upstream identity layer and trusted as-is;
// the core performs no re-validation of role authenticity.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// RoleFromString parses an actor role, accepting exactly "customer", "agent" or "admin".
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("actorRole", fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	_, err := RoleFromString(string(r))
	return err
}

// TransitionPolicy decides which lifecycle statuses an actor role may set.
//
// The asymmetry is intentional: agents are field workers restricted to the
// terminal-leaning updates they make on the road, while customers and admins
// are trusted to set any status. The policy authorizes the target status
// only - reachability from the current status is deliberately not checked.
type TransitionPolicy struct{}

// NewTransitionPolicy creates a new TransitionPolicy instance.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// agentAllowedStatuses are the only statuses an agent may set.
func agentAllowedStatuses() map[parcel.Status]struct{} {
	return map[parcel.Status]struct{}{
		parcel.CollectedByAgent: {},
		parcel.Delivered:        {},
		parcel.Failed:           {},
		parcel.Return:           {},
	}
}

// Authorize returns nil if the role may set newStatus on a parcel,
// or a ForbiddenError otherwise. The parcel itself is not consulted.
func (TransitionPolicy) Authorize(role Role, newStatus parcel.Status) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if err := newStatus.Validate(); err != nil {
		return err
	}

	if role != RoleAgent {
		return nil
	}

	if _, ok := agentAllowedStatuses()[newStatus]; !ok {
		return errs.NewForbiddenError(string(role), fmt.Sprintf("set status %s", newStatus))
	}

	return nil
}
