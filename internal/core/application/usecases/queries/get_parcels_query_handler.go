package queries

import (
	"context"
	"database/sql"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetParcelsQueryHandler retrieves the dispatcher listing from the database.
// Joins the agents read table so assigned parcels carry agent contact details.
type GetParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelsQueryHandler creates a handler for parcel listing queries.
func NewGetParcelsQueryHandler(db *gorm.DB) GetParcelsQueryHandler {
	return GetParcelsQueryHandler{db: db}
}

// Handle executes the listing query. Results come newest first.
func (h GetParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetParcelsQuery,
) ([]GetParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			p.id,
			p.tracking_number,
			p.customer_id,
			p.agent_id,
			a.name,
			a.phone,
			p.status,
			p.payment_type,
			p.parcel_size,
			p.pickup_address,
			p.delivery_address,
			p.created_at
		FROM parcels p
		LEFT JOIN agents a ON a.id = p.agent_id
	`
	if assigned := query.Assigned(); assigned != nil {
		if *assigned {
			sqlText += " WHERE p.agent_id IS NOT NULL"
		} else {
			sqlText += " WHERE p.agent_id IS NULL"
		}
	}
	sqlText += " ORDER BY p.created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlText).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]GetParcelsQueryResponse, 0)
	for rows.Next() {
		var (
			resp       GetParcelsQueryResponse
			id         string
			customerID string
			agentID    sql.NullString
			agentName  sql.NullString
			agentPhone sql.NullString
			statusInt  int
		)

		err = rows.Scan(&id, &resp.TrackingNumber, &customerID, &agentID,
			&agentName, &agentPhone, &statusInt, &resp.PaymentType,
			&resp.ParcelSize, &resp.PickupAddress, &resp.DeliveryAddress,
			&resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromString(id)
		if err != nil {
			return nil, err
		}
		resp.CustomerID, err = kernel.UUIDFromString(customerID)
		if err != nil {
			return nil, err
		}
		if agentID.Valid {
			agent, idErr := kernel.UUIDFromString(agentID.String)
			if idErr != nil {
				return nil, idErr
			}
			resp.AgentID = &agent
		}
		if agentName.Valid {
			resp.AgentName = &agentName.String
		}
		if agentPhone.Valid {
			resp.AgentPhone = &agentPhone.String
		}
		resp.Status = parcel.Status(statusInt).String()

		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
