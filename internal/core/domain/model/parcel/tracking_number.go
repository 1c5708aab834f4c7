package parcel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"courier/internal/pkg/errs"
)

// TrackingNumberPrefix is the human-recognizable prefix shared by all
// tracking numbers issued by the system.
const TrackingNumberPrefix = "EXCEL-COURIER"

// trackingNumberRandomLength is the number of random characters following the prefix.
const trackingNumberRandomLength = 10

// trackingNumberAlphabet is the uppercase base-36 alphabet used for the random part.
const trackingNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var trackingNumberPattern = regexp.MustCompile(`^EXCEL-COURIER-[A-Z0-9]{10}$`)

// TrackingNumber is the public, human-shareable identifier of a parcel,
// distinct from the internal id. The format is "EXCEL-COURIER-" followed by
// ten random uppercase base-36 characters.
//
// Uniqueness is probabilistic at generation time; the store enforces it with
// a unique constraint and callers regenerate on collision.
type TrackingNumber struct {
	value string
}

// NewTrackingNumber generates a fresh random tracking number.
func NewTrackingNumber() TrackingNumber {
	var sb strings.Builder
	sb.WriteString(TrackingNumberPrefix)
	sb.WriteByte('-')
	for range trackingNumberRandomLength {
		sb.WriteByte(trackingNumberAlphabet[rand.IntN(len(trackingNumberAlphabet))]) //nolint:gosec // identifier, not a secret
	}
	return TrackingNumber{value: sb.String()}
}

// TrackingNumberFromString parses a tracking number from its string form,
// validating it against the canonical pattern.
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	if !trackingNumberPattern.MatchString(s) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber", fmt.Errorf("%q does not match %s", s, trackingNumberPattern))
	}
	return TrackingNumber{value: s}, nil
}

// Validate checks that the tracking number carries a well-formed value.
func (n TrackingNumber) Validate() error {
	if !trackingNumberPattern.MatchString(n.value) {
		return errs.NewValueIsRequiredError(
			"tracking number must be created via NewTrackingNumber or TrackingNumberFromString")
	}
	return nil
}

// String returns the tracking number in its shareable form.
func (n TrackingNumber) String() string {
	return n.value
}

// IsEqual compares two tracking numbers for equality.
func (n TrackingNumber) IsEqual(other TrackingNumber) bool {
	return n.value == other.value
}
