package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler fetches a single order with its association rows.
// An unknown id surfaces as an errs.ObjectNotFoundError, which the HTTP
// layer maps to 404.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve one order.
// Returns the order with its product ids in line order, or
// errs.ObjectNotFoundError when no order has the given id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.status,
			op.product_id
		FROM orders o
		LEFT JOIN order_products op ON op.order_id = o.id
		WHERE o.id = ?
		ORDER BY op.id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	var (
		response OrderResponse
		found    bool
	)

	for rows.Next() {
		var (
			id         uuid.UUID
			customerID uuid.UUID
			status     int
			productID  *uuid.UUID
		)

		if err = rows.Scan(&id, &customerID, &status, &productID); err != nil {
			return OrderResponse{}, err
		}

		if !found {
			orderID, idErr := kernel.UUIDFromBytes(id[:])
			if idErr != nil {
				return OrderResponse{}, idErr
			}
			custID, idErr := kernel.UUIDFromBytes(customerID[:])
			if idErr != nil {
				return OrderResponse{}, idErr
			}

			response = OrderResponse{
				ID:         orderID,
				CustomerID: custID,
				Status:     order.Status(status),
				ProductIDs: make([]kernel.UUID, 0),
			}
			found = true
		}

		if productID != nil {
			pID, idErr := kernel.UUIDFromBytes((*productID)[:])
			if idErr != nil {
				return OrderResponse{}, idErr
			}
			response.ProductIDs = append(response.ProductIDs, pID)
		}
	}

	if err = rows.Err(); err != nil {
		return OrderResponse{}, err
	}

	if !found {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return response, nil
}
