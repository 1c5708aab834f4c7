// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"courier/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure the status/field change and the appended tracking
// events always persist together.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ParcelUoW manages transactions for parcel operations.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}
)
