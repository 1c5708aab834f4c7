// Package report renders parcel listings into downloadable exports for the
// admin dashboard.
package report

import (
	"encoding/csv"
	"io"
	"time"

	"courier/internal/core/application/usecases/queries"
)

// csvHeader is the column layout of the parcel export.
var csvHeader = []string{
	"tracking_number",
	"status",
	"payment_type",
	"parcel_size",
	"pickup_address",
	"delivery_address",
	"agent_name",
	"agent_phone",
	"booked_at",
}

// WriteParcelsCSV streams the parcel listing as CSV.
// Optional agent columns stay empty for unassigned parcels.
func WriteParcelsCSV(w io.Writer, parcels []queries.GetParcelsQueryResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, p := range parcels {
		record := []string{
			p.TrackingNumber,
			p.Status,
			p.PaymentType,
			p.ParcelSize,
			p.PickupAddress,
			p.DeliveryAddress,
			optional(p.AgentName),
			optional(p.AgentPhone),
			p.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
