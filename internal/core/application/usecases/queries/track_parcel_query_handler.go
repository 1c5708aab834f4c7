package queries

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// maxGeocodeConcurrency caps parallel reverse-geocode lookups per request so
// a long timeline cannot flood the geocoding provider.
const maxGeocodeConcurrency = 5

// unknownPlaceName is shown for timeline entries recorded without coordinates.
const unknownPlaceName = "Unknown"

// TrackParcelQueryHandler assembles the tracking view: the parcel row, its
// full timeline, and a reverse-geocoded place name per event.
type TrackParcelQueryHandler struct {
	db       *gorm.DB
	resolver ports.GeocodeResolver
}

// NewTrackParcelQueryHandler creates a handler for public tracking lookups.
func NewTrackParcelQueryHandler(db *gorm.DB, resolver ports.GeocodeResolver) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db, resolver: resolver}
}

// Handle executes the tracking lookup.
// Place names resolve concurrently with a bounded fan-out; the resolver
// degrades to sentinel names rather than failing, so geocoding can never
// break tracking. Events are returned newest first.
func (h TrackParcelQueryHandler) Handle(
	ctx context.Context,
	query TrackParcelQuery,
) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	var (
		parcelID  string
		statusInt int
		resp      TrackParcelQueryResponse
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			pickup_address,
			delivery_address,
			updated_at
		FROM parcels
		WHERE tracking_number = ?
	`, query.TrackingNumber().String()).Row()

	err := row.Scan(&parcelID, &statusInt, &resp.PickupAddress, &resp.DeliveryAddress, &resp.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrackParcelQueryResponse{}, errs.NewObjectNotFoundError(
				"trackingNumber", query.TrackingNumber().String())
		}
		return TrackParcelQueryResponse{}, err
	}

	resp.TrackingNumber = query.TrackingNumber().String()
	resp.CurrentStatus = parcel.Status(statusInt).String()

	events, err := h.loadEvents(ctx, parcelID)
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}

	if err = h.resolvePlaceNames(ctx, events); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	resp.Events = events

	return resp, nil
}

func (h TrackParcelQueryHandler) loadEvents(ctx context.Context, parcelID string) ([]TrackParcelEventResponse, error) {
	events := make([]TrackParcelEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			location_lat,
			location_lng,
			dispatch_id,
			created_at
		FROM tracking_events
		WHERE parcel_id = ?
		ORDER BY id
	`, parcelID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			event      TrackParcelEventResponse
			lat, lng   sql.NullFloat64
			dispatchID sql.NullString
			timestamp  time.Time
		)

		err = rows.Scan(&event.Status, &lat, &lng, &dispatchID, &timestamp)
		if err != nil {
			return nil, err
		}

		if lat.Valid && lng.Valid {
			event.Lat = &lat.Float64
			event.Lng = &lng.Float64
		}
		if dispatchID.Valid {
			event.DispatchID = &dispatchID.String
		}
		event.Timestamp = timestamp
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (h TrackParcelQueryHandler) resolvePlaceNames(ctx context.Context, events []TrackParcelEventResponse) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxGeocodeConcurrency)

	for i := range events {
		event := &events[i]
		if event.Lat == nil || event.Lng == nil {
			event.LocationName = unknownPlaceName
			continue
		}

		point, err := kernel.NewGeoPoint(*event.Lat, *event.Lng)
		if err != nil {
			event.LocationName = unknownPlaceName
			continue
		}

		g.Go(func() error {
			event.LocationName = h.resolver.Resolve(gctx, point)
			return nil
		})
	}

	return g.Wait()
}
