package parcel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/errs"
)

func mustGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	pt, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return pt
}

func newBookedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	pickup := mustGeoPoint(t, 12.9, 77.6)
	delivery := mustGeoPoint(t, 13.0, 77.7)

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"221B Baker Street",
		"742 Evergreen Terrace",
		"Documents",
		parcel.PaymentCOD,
		parcel.SizeMedium,
		&pickup,
		&delivery,
		time.Now(),
	)
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("creates booked parcel with creation event", func(t *testing.T) {
		p := newBookedParcel(t)

		assert.Equal(t, parcel.Booked, p.Status())
		assert.Nil(t, p.AgentID())

		events := p.Events()
		require.Len(t, events, 1)
		assert.Equal(t, parcel.EventStatusOf(parcel.Booked), events[0].Status())
		require.NotNil(t, events[0].Location())
		assert.InDelta(t, 12.9, events[0].Location().Lat(), 0)
		assert.Nil(t, events[0].DispatchID())
	})

	t.Run("current location starts at pickup coordinates", func(t *testing.T) {
		p := newBookedParcel(t)

		require.NotNil(t, p.CurrentLocation())
		equal, err := p.CurrentLocation().IsEqual(*p.PickupPoint())
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("coordinates are optional", func(t *testing.T) {
		p, err := parcel.NewParcel(
			kernel.NewUUID(), kernel.NewUUID(),
			"A", "B", "Electronics",
			parcel.PaymentPrepaid, parcel.SizeSmall,
			nil, nil, time.Now(),
		)

		require.NoError(t, err)
		assert.Nil(t, p.CurrentLocation())
		require.Len(t, p.Events(), 1)
		assert.Nil(t, p.Events()[0].Location())
	})

	t.Run("generated tracking number matches pattern", func(t *testing.T) {
		p := newBookedParcel(t)

		assert.Regexp(t, `^EXCEL-COURIER-[A-Z0-9]{10}$`, p.TrackingNumber().String())
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name            string
			pickupAddress   string
			deliveryAddress string
			parcelType      string
			paymentType     parcel.PaymentType
			parcelSize      parcel.ParcelSize
		}{
			{"missing pickup address", "", "B", "Docs", parcel.PaymentCOD, parcel.SizeMedium},
			{"missing delivery address", "A", "", "Docs", parcel.PaymentCOD, parcel.SizeMedium},
			{"missing parcel type", "A", "B", "", parcel.PaymentCOD, parcel.SizeMedium},
			{"invalid payment type", "A", "B", "Docs", "Barter", parcel.SizeMedium},
			{"invalid parcel size", "A", "B", "Docs", parcel.PaymentCOD, "Gigantic"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := parcel.NewParcel(
					kernel.NewUUID(), kernel.NewUUID(),
					tt.pickupAddress, tt.deliveryAddress, tt.parcelType,
					tt.paymentType, tt.parcelSize,
					nil, nil, time.Now(),
				)
				require.Error(t, err)
			})
		}
	})
}

func TestParcel_ChangeStatus(t *testing.T) {
	t.Run("sets status and appends exactly one event", func(t *testing.T) {
		p := newBookedParcel(t)
		now := time.Now()

		err := p.ChangeStatus(parcel.InTransit, nil, nil, now)

		require.NoError(t, err)
		assert.Equal(t, parcel.InTransit, p.Status())
		events := p.Events()
		require.Len(t, events, 2)
		assert.Equal(t, parcel.EventStatus("In Transit"), events[1].Status())
		assert.Equal(t, now, events[1].Timestamp())
	})

	t.Run("explicit event location wins", func(t *testing.T) {
		p := newBookedParcel(t)
		loc := mustGeoPoint(t, 20.0, 70.0)

		err := p.ChangeStatus(parcel.HubReceived, &loc, nil, time.Now())

		require.NoError(t, err)
		events := p.Events()
		require.NotNil(t, events[1].Location())
		assert.InDelta(t, 20.0, events[1].Location().Lat(), 0)
	})

	t.Run("falls back to current location", func(t *testing.T) {
		p := newBookedParcel(t)
		current := mustGeoPoint(t, 15.5, 75.5)
		require.NoError(t, p.UpdateCurrentLocation(current))

		err := p.ChangeStatus(parcel.WarehouseReceived, nil, nil, time.Now())

		require.NoError(t, err)
		events := p.Events()
		require.NotNil(t, events[1].Location())
		assert.InDelta(t, 15.5, events[1].Location().Lat(), 0)
	})

	t.Run("falls back to pickup when nothing else is known", func(t *testing.T) {
		p, err := parcel.NewParcel(
			kernel.NewUUID(), kernel.NewUUID(),
			"A", "B", "Docs",
			parcel.PaymentPrepaid, parcel.SizeMedium,
			nil, nil, time.Now(),
		)
		require.NoError(t, err)

		require.NoError(t, p.ChangeStatus(parcel.InTransit, nil, nil, time.Now()))

		assert.Nil(t, p.Events()[1].Location())
	})

	t.Run("carries the dispatch id through", func(t *testing.T) {
		p := newBookedParcel(t)
		dispatchID := "run-42"

		err := p.ChangeStatus(parcel.CollectedByAgent, nil, &dispatchID, time.Now())

		require.NoError(t, err)
		events := p.Events()
		require.NotNil(t, events[1].DispatchID())
		assert.Equal(t, "run-42", *events[1].DispatchID())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		p := newBookedParcel(t)

		err := p.ChangeStatus(parcel.Unknown, nil, nil, time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Len(t, p.Events(), 1)
		assert.Equal(t, parcel.Booked, p.Status())
	})

	t.Run("duplicate calls append duplicate events", func(t *testing.T) {
		p := newBookedParcel(t)

		require.NoError(t, p.ChangeStatus(parcel.Delivered, nil, nil, time.Now()))
		require.NoError(t, p.ChangeStatus(parcel.Delivered, nil, nil, time.Now()))

		assert.Len(t, p.Events(), 3)
	})
}

func TestParcel_Assign(t *testing.T) {
	t.Run("sets agent and forces Picked Up", func(t *testing.T) {
		p := newBookedParcel(t)
		agentID := kernel.NewUUID()

		err := p.Assign(agentID, time.Now())

		require.NoError(t, err)
		require.NotNil(t, p.AgentID())
		assert.True(t, p.AgentID().IsEqual(agentID))
		assert.Equal(t, parcel.PickedUp, p.Status())
		events := p.Events()
		require.Len(t, events, 2)
		assert.Equal(t, parcel.EventStatus("Picked Up"), events[1].Status())
	})

	t.Run("overwrites even when parcel is mid-transit", func(t *testing.T) {
		p := newBookedParcel(t)
		require.NoError(t, p.ChangeStatus(parcel.InTransit, nil, nil, time.Now()))

		err := p.Assign(kernel.NewUUID(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, parcel.PickedUp, p.Status())
	})

	t.Run("each call appends one more event", func(t *testing.T) {
		p := newBookedParcel(t)

		require.NoError(t, p.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, p.Assign(kernel.NewUUID(), time.Now()))

		assert.Len(t, p.Events(), 3)
		assert.Equal(t, parcel.PickedUp, p.Status())
	})

	t.Run("rejects zero agent id", func(t *testing.T) {
		p := newBookedParcel(t)

		err := p.Assign(kernel.UUID{}, time.Now())

		require.Error(t, err)
		assert.Len(t, p.Events(), 1)
	})
}

func TestParcel_Unassign(t *testing.T) {
	t.Run("clears agent and forces Booked", func(t *testing.T) {
		p := newBookedParcel(t)
		require.NoError(t, p.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, p.ChangeStatus(parcel.Delivered, nil, nil, time.Now()))

		err := p.Unassign(time.Now())

		require.NoError(t, err)
		assert.Nil(t, p.AgentID())
		assert.Equal(t, parcel.Booked, p.Status())
	})

	t.Run("records the Unassigned pseudo-status event", func(t *testing.T) {
		p := newBookedParcel(t)
		require.NoError(t, p.Assign(kernel.NewUUID(), time.Now()))

		require.NoError(t, p.Unassign(time.Now()))

		events := p.Events()
		last := events[len(events)-1]
		assert.Equal(t, parcel.EventStatusUnassigned, last.Status())
		require.NotNil(t, last.Location())
	})
}

func TestParcel_UpdateCurrentLocation(t *testing.T) {
	p := newBookedParcel(t)
	pt := mustGeoPoint(t, 14.0, 76.0)

	err := p.UpdateCurrentLocation(pt)

	require.NoError(t, err)
	require.NotNil(t, p.CurrentLocation())
	assert.InDelta(t, 14.0, p.CurrentLocation().Lat(), 0)
	// Location updates never touch the timeline.
	assert.Len(t, p.Events(), 1)
}

func TestParcel_UncommittedEvents(t *testing.T) {
	p := newBookedParcel(t)
	require.Len(t, p.UncommittedEvents(), 1)

	p.MarkEventsCommitted()
	assert.Empty(t, p.UncommittedEvents())

	require.NoError(t, p.ChangeStatus(parcel.InTransit, nil, nil, time.Now()))
	require.NoError(t, p.ChangeStatus(parcel.HubReceived, nil, nil, time.Now()))

	assert.Len(t, p.UncommittedEvents(), 2)
	assert.Len(t, p.Events(), 3)

	p.MarkEventsCommitted()
	assert.Empty(t, p.UncommittedEvents())
}

func TestRestoreParcel(t *testing.T) {
	t.Run("round-trips a parcel", func(t *testing.T) {
		original := newBookedParcel(t)
		require.NoError(t, original.Assign(kernel.NewUUID(), time.Now()))

		restored, err := parcel.RestoreParcel(
			original.ID(),
			original.TrackingNumber(),
			original.CustomerID(),
			original.AgentID(),
			original.PickupAddress(),
			original.DeliveryAddress(),
			original.ParcelType(),
			original.PaymentType(),
			original.ParcelSize(),
			original.Status(),
			original.PickupPoint(),
			original.DeliveryPoint(),
			original.CurrentLocation(),
			original.Events(),
		)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.Status(), restored.Status())
		assert.Len(t, restored.Events(), 2)
		assert.Empty(t, restored.UncommittedEvents())
	})

	t.Run("rejects empty timeline", func(t *testing.T) {
		original := newBookedParcel(t)

		_, err := parcel.RestoreParcel(
			original.ID(),
			original.TrackingNumber(),
			original.CustomerID(),
			nil,
			original.PickupAddress(),
			original.DeliveryAddress(),
			original.ParcelType(),
			original.PaymentType(),
			original.ParcelSize(),
			original.Status(),
			nil, nil, nil,
			nil,
		)

		require.ErrorIs(t, err, parcel.ErrParcelHasNoEvents)
	})
}

func TestParcel_Validate(t *testing.T) {
	var p parcel.Parcel

	require.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)
	require.NoError(t, newBookedParcel(t).Validate())
}

// Full lifecycle walk: booking, assignment, delivery.
func TestParcel_Lifecycle(t *testing.T) {
	p := newBookedParcel(t)
	require.Equal(t, parcel.Booked, p.Status())
	require.Len(t, p.Events(), 1)

	require.NoError(t, p.Assign(kernel.NewUUID(), time.Now()))
	require.Equal(t, parcel.PickedUp, p.Status())
	require.Len(t, p.Events(), 2)

	require.NoError(t, p.ChangeStatus(parcel.Delivered, nil, nil, time.Now()))
	require.Equal(t, parcel.Delivered, p.Status())

	events := p.Events()
	require.Len(t, events, 3)
	assert.Equal(t, parcel.EventStatus("Delivered"), events[2].Status())
}
