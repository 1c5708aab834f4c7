package queries

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetCustomerParcelsQueryHandler retrieves a customer's bookings from the database.
type GetCustomerParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerParcelsQueryHandler creates a handler for booking history queries.
func NewGetCustomerParcelsQueryHandler(db *gorm.DB) GetCustomerParcelsQueryHandler {
	return GetCustomerParcelsQueryHandler{db: db}
}

// Handle executes the booking history query. Results come newest first.
func (h GetCustomerParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerParcelsQuery,
) ([]GetCustomerParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			status,
			payment_type,
			parcel_size,
			pickup_address,
			delivery_address,
			created_at
		FROM parcels
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]GetCustomerParcelsQueryResponse, 0)
	for rows.Next() {
		var (
			resp      GetCustomerParcelsQueryResponse
			id        string
			statusInt int
		)

		err = rows.Scan(&id, &resp.TrackingNumber, &statusInt, &resp.PaymentType,
			&resp.ParcelSize, &resp.PickupAddress, &resp.DeliveryAddress, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromString(id)
		if err != nil {
			return nil, err
		}
		resp.Status = parcel.Status(statusInt).String()

		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
