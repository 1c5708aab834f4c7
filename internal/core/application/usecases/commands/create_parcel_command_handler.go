package commands

import (
	"context"
	"errors"
	"time"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/errs"
)

// maxTrackingNumberAttempts bounds how many times booking retries with a
// regenerated tracking number after a uniqueness collision.
const maxTrackingNumberAttempts = 3

// CreateParcelCommandHandler handles the business logic for parcel booking.
// Creates new parcels in "Booked" status with a generated tracking number
// and the booking event already in the timeline.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	parcelID := kernel.NewUUID()
//	cmd, _ := NewCreateParcelCommand(parcelID, customerID, "12 Mirpur Rd", "7 Gulshan Ave",
//	    "Documents", parcel.PaymentCOD, parcel.SizeSmall, &pickup, &delivery)
//
//	p, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("parcel booking failed: %w", err)
//	}
//	fmt.Println(p.TrackingNumber())
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel booking operations.
// Requires a ParcelUoWFactory for transactional persistence.
func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel booking command and returns the booked parcel.
// Tracking numbers are random, so a uniqueness collision is possible; on a
// conflict the handler regenerates the number and retries in a fresh
// transaction, up to maxTrackingNumberAttempts times.
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := parcel.NewParcel(cmd.ParcelID(), cmd.CustomerID(),
		cmd.PickupAddress(), cmd.DeliveryAddress(), cmd.ParcelType(),
		cmd.PaymentType(), cmd.ParcelSize(),
		cmd.PickupPoint(), cmd.DeliveryPoint(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err = h.persist(ctx, p)
		if err == nil {
			p.MarkEventsCommitted()
			return p, nil
		}
		if !errors.Is(err, errs.ErrConflict) || attempt >= maxTrackingNumberAttempts {
			return nil, err
		}
		p.RegenerateTrackingNumber()
	}
}

func (h *CreateParcelCommandHandler) persist(ctx context.Context, p *parcel.Parcel) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ParcelRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
