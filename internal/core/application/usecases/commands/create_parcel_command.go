package commands

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// CreateParcelCommand books a new parcel for a customer.
type CreateParcelCommand struct {
	parcelID        kernel.UUID
	customerID      kernel.UUID
	pickupAddress   string
	deliveryAddress string
	parcelType      string
	paymentType     parcel.PaymentType
	parcelSize      parcel.ParcelSize
	pickupPoint     *kernel.GeoPoint
	deliveryPoint   *kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(parcelID kernel.UUID, customerID kernel.UUID,
	pickupAddress string, deliveryAddress string, parcelType string,
	paymentType parcel.PaymentType, parcelSize parcel.ParcelSize,
	pickupPoint *kernel.GeoPoint, deliveryPoint *kernel.GeoPoint) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setCustomerID(customerID),
		cmd.setPickupAddress(pickupAddress),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setParcelType(parcelType),
		cmd.setPaymentType(paymentType),
		cmd.setParcelSize(parcelSize),
		cmd.setPoints(pickupPoint, deliveryPoint),
	)
	if err != nil {
		return CreateParcelCommand{}, err
	}
	return cmd, nil
}

func (c *CreateParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	c.parcelID = id
	return nil
}

func (c *CreateParcelCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateParcelCommand) setPickupAddress(addr string) error {
	if addr == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	c.pickupAddress = addr
	return nil
}

func (c *CreateParcelCommand) setDeliveryAddress(addr string) error {
	if addr == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	c.deliveryAddress = addr
	return nil
}

func (c *CreateParcelCommand) setParcelType(parcelType string) error {
	if parcelType == "" {
		return errs.NewValueIsRequiredError("parcelType")
	}
	c.parcelType = parcelType
	return nil
}

func (c *CreateParcelCommand) setPaymentType(paymentType parcel.PaymentType) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}
	c.paymentType = paymentType
	return nil
}

func (c *CreateParcelCommand) setParcelSize(parcelSize parcel.ParcelSize) error {
	if err := parcelSize.Validate(); err != nil {
		return err
	}
	c.parcelSize = parcelSize
	return nil
}

func (c *CreateParcelCommand) setPoints(pickup *kernel.GeoPoint, delivery *kernel.GeoPoint) error {
	if pickup != nil {
		if err := pickup.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("pickupPoint", err)
		}
	}
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("deliveryPoint", err)
		}
	}
	c.pickupPoint = pickup
	c.deliveryPoint = delivery
	return nil
}

func (c *CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *CreateParcelCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *CreateParcelCommand) PickupAddress() string {
	return c.pickupAddress
}

func (c *CreateParcelCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *CreateParcelCommand) ParcelType() string {
	return c.parcelType
}

func (c *CreateParcelCommand) PaymentType() parcel.PaymentType {
	return c.paymentType
}

func (c *CreateParcelCommand) ParcelSize() parcel.ParcelSize {
	return c.parcelSize
}

func (c *CreateParcelCommand) PickupPoint() *kernel.GeoPoint {
	return c.pickupPoint
}

func (c *CreateParcelCommand) DeliveryPoint() *kernel.GeoPoint {
	return c.deliveryPoint
}

func (c *CreateParcelCommand) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError("CreateParcelCommand must be created via NewCreateParcelCommand"))
}
