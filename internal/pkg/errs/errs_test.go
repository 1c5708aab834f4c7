package errs_test

import (
	"errors"
	"testing"

	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("parcelId", "123")

		assert.Equal(t, "parcelId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("parcelId", "123", cause)

		assert.Equal(t, "parcelId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: parcelId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("agentId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("paymentType")

		assert.Equal(t, "paymentType", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: paymentType", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("paymentType", cause)

		assert.Equal(t, "paymentType", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: paymentType (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("lat", 150, -90, 90)

		assert.Equal(t, "lat", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, -90, err.Min)
		assert.Equal(t, 90, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is lat, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("lng", -200, -180, 180, cause)

		assert.Equal(t, "lng", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -200 is lng, min value is -180, max value is 180 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("pickupAddress")

		assert.Equal(t, "pickupAddress", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: pickupAddress", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("pickupAddress", cause)

		assert.Equal(t, "pickupAddress", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: pickupAddress (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("agent", "set status In Transit")

	assert.Equal(t, "agent", err.Role)
	assert.Equal(t, "set status In Transit", err.Action)
	assert.Equal(t, "operation is forbidden: agent is not allowed to set status In Transit", err.Error())
	assert.Equal(t, errs.ErrForbidden, err.Unwrap())
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("trackingNumber")

		assert.Equal(t, "trackingNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "conflict: trackingNumber", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicated key")
		err := errs.NewConflictErrorWithCause("trackingNumber", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "conflict: trackingNumber (cause: duplicated key)", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})
}

func TestExternalServiceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewExternalServiceError("geocoding", cause)

	assert.Equal(t, "geocoding", err.Service)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "external service failed: geocoding (cause: connection refused)", err.Error())
	assert.Equal(t, errs.ErrExternalService, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrExternalService)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "operation is forbidden", errs.ErrForbidden.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "external service failed", errs.ErrExternalService.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("parcelId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("paymentType")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("lat", 150, -90, 90)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("pickupAddress")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		forbiddenErr := errs.NewForbiddenError("agent", "set status Booked")
		require.ErrorIs(t, forbiddenErr, errs.ErrForbidden)

		conflictErr := errs.NewConflictError("trackingNumber")
		require.ErrorIs(t, conflictErr, errs.ErrConflict)

		externalErr := errs.NewExternalServiceError("distance matrix", errors.New("timeout"))
		require.ErrorIs(t, externalErr, errs.ErrExternalService)
	})
}
