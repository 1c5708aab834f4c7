package parcel

import (
	"fmt"

	"courier/internal/pkg/errs"
)

// PaymentType is the payment arrangement for a parcel.
// It is required at creation and immutable afterwards.
type PaymentType string

const (
	// PaymentCOD is cash on delivery.
	PaymentCOD PaymentType = "COD"
	// PaymentPrepaid means the shipment was paid for at booking time.
	PaymentPrepaid PaymentType = "Prepaid"
)

// PaymentTypeFromString parses a payment type, accepting exactly "COD" or "Prepaid".
func PaymentTypeFromString(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case PaymentCOD, PaymentPrepaid:
		return PaymentType(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentType", fmt.Errorf("%q is not a valid payment type", s))
	}
}

// Validate checks that the payment type is one of the enumerated values.
func (p PaymentType) Validate() error {
	_, err := PaymentTypeFromString(string(p))
	return err
}

// ParcelSize is the size category of a parcel.
type ParcelSize string

const (
	SizeSmall  ParcelSize = "Small"
	SizeMedium ParcelSize = "Medium"
	SizeLarge  ParcelSize = "Large"
)

// ParcelSizeFromString parses a size category.
// An empty string maps to the default, Medium.
func ParcelSizeFromString(s string) (ParcelSize, error) {
	if s == "" {
		return SizeMedium, nil
	}
	switch ParcelSize(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return ParcelSize(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("parcelSize", fmt.Errorf("%q is not a valid parcel size", s))
	}
}

// Validate checks that the size is one of the enumerated values.
func (p ParcelSize) Validate() error {
	if p == "" {
		return errs.NewValueIsRequiredError("parcelSize")
	}
	_, err := ParcelSizeFromString(string(p))
	return err
}
