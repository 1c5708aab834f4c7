// Package services contains domain services that implement business logic
// spanning concerns a single aggregate cannot own.
//
// TransitionPolicy holds the role-based authorization rules for lifecycle
// status changes. It is stateless and operates purely on the requested role
// and target status, keeping the Parcel aggregate free of actor concerns.
package services
