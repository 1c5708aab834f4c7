package queries

import (
	"errors"
	"time"

	"courier/internal/pkg/guard"
)

var (
	ErrGetDailyMetricsQueryIsNotConstructed = errors.New(
		"GetDailyMetricsQuery must be created via NewGetDailyMetricsQuery constructor",
	)
)

// GetDailyMetricsQuery computes the admin dashboard counters for one
// calendar day (UTC).
type GetDailyMetricsQuery struct {
	day time.Time

	guard guard.ConstructorGuard
}

// NewGetDailyMetricsQuery creates a metrics query for the given day.
// The time is truncated to midnight UTC.
func NewGetDailyMetricsQuery(day time.Time) GetDailyMetricsQuery {
	return GetDailyMetricsQuery{
		day:   day.UTC().Truncate(24 * time.Hour),
		guard: guard.NewConstructorGuard(),
	}
}

func (q GetDailyMetricsQuery) Day() time.Time {
	return q.day
}

// Validate ensures the query was created through the constructor.
func (q GetDailyMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetDailyMetricsQueryIsNotConstructed)
}

// GetDailyMetricsQueryResponse holds the dashboard counters.
// Bookings counts parcels created on the day; Delivered, Failed and
// CODBookings count against the same booking date.
type GetDailyMetricsQueryResponse struct {
	Day         time.Time
	Bookings    int
	Delivered   int
	Failed      int
	CODBookings int
}
