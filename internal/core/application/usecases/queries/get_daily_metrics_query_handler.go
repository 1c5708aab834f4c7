package queries

import (
	"context"
	"time"

	"courier/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetDailyMetricsQueryHandler computes dashboard counters with a single
// aggregate query over the parcels booked on the requested day.
type GetDailyMetricsQueryHandler struct {
	db *gorm.DB
}

// NewGetDailyMetricsQueryHandler creates a handler for dashboard metrics queries.
func NewGetDailyMetricsQueryHandler(db *gorm.DB) GetDailyMetricsQueryHandler {
	return GetDailyMetricsQueryHandler{db: db}
}

// Handle executes the metrics aggregation for the query's day.
func (h GetDailyMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetDailyMetricsQuery,
) (GetDailyMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDailyMetricsQueryResponse{}, err
	}

	dayStart := query.Day()
	dayEnd := dayStart.Add(24 * time.Hour)

	resp := GetDailyMetricsQueryResponse{Day: dayStart}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE payment_type = ?)
		FROM parcels
		WHERE created_at >= ? AND created_at < ?
	`, parcel.Delivered, parcel.Failed, string(parcel.PaymentCOD), dayStart, dayEnd).Row()

	err := row.Scan(&resp.Bookings, &resp.Delivered, &resp.Failed, &resp.CODBookings)
	if err != nil {
		return GetDailyMetricsQueryResponse{}, err
	}

	return resp, nil
}
