package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMerchantOrdersQueryHandler reads a merchant's orders straight from the
// database, joining in the assigned driver's name. The read side bypasses
// the aggregates on purpose: listing needs no domain behavior.
type GetMerchantOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetMerchantOrdersQueryHandler creates a handler for merchant order
// listings.
func NewGetMerchantOrdersQueryHandler(db *gorm.DB) GetMerchantOrdersQueryHandler {
	return GetMerchantOrdersQueryHandler{db: db}
}

// Handle returns one page of the merchant's orders, newest pickup first,
// with the total row count for pagination.
func (h GetMerchantOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetMerchantOrdersQuery,
) (GetMerchantOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMerchantOrdersQueryResponse{}, err
	}

	where := `o.merchant_id = ?`
	args := []any{query.MerchantID().Bytes()}
	if query.Search() != "" {
		where += ` AND (o.id::text ILIKE ? OR o.description ILIKE ? OR d.name ILIKE ?)`
		pattern := "%" + query.Search() + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var total int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders o
		LEFT JOIN drivers d ON d.id = o.driver_id
		WHERE `+where,
		args...,
	).Scan(&total).Error
	if err != nil {
		return GetMerchantOrdersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.PerPage()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.pickup_at,
			o.dropoff_at,
			o.weight,
			o.description,
			o.driver_id,
			d.name
		FROM orders o
		LEFT JOIN drivers d ON d.id = o.driver_id
		WHERE `+where+`
		ORDER BY o.pickup_at DESC, o.id
		LIMIT ? OFFSET ?
	`, append(args, query.PerPage(), offset)...).Rows()
	if err != nil {
		return GetMerchantOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]MerchantOrderResponse, 0, query.PerPage())
	for rows.Next() {
		var (
			id         uuid.UUID
			status     int
			pickupAt   time.Time
			dropoffAt  time.Time
			weight     float64
			desc       string
			driverID   uuid.NullUUID
			driverName sql.NullString
		)

		if err = rows.Scan(&id, &status, &pickupAt, &dropoffAt, &weight, &desc, &driverID, &driverName); err != nil {
			return GetMerchantOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetMerchantOrdersQueryResponse{}, idErr
		}

		resp := MerchantOrderResponse{
			ID:          orderID,
			Status:      order.Status(status).String(),
			PickupAt:    pickupAt,
			DropoffAt:   dropoffAt,
			Weight:      weight,
			Description: desc,
		}
		if driverID.Valid {
			dID, dErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if dErr != nil {
				return GetMerchantOrdersQueryResponse{}, dErr
			}
			resp.DriverID = &dID
		}
		if driverName.Valid {
			resp.DriverName = &driverName.String
		}
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return GetMerchantOrdersQueryResponse{}, err
	}

	return GetMerchantOrdersQueryResponse{
		Orders:  orders,
		Total:   total,
		Page:    query.Page(),
		PerPage: query.PerPage(),
	}, nil
}
