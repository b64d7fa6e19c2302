package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders from the database, optionally filtered
// by customer. Each order carries its association rows in line order.
//
// Example:
//
//	handler := NewGetOrdersQueryHandler(db)
//	query, _ := NewGetOrdersQuery(&customerID)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve orders.
// Without a customer filter every order is returned; with one, only that
// customer's orders. Results are sorted by order id, association rows by
// insertion order, for consistent output.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			o.id,
			o.customer_id,
			o.status,
			op.product_id
		FROM orders o
		LEFT JOIN order_products op ON op.order_id = o.id
	`
	args := make([]any, 0, 1)
	if query.CustomerID() != nil {
		sql += ` WHERE o.customer_id = ?`
		args = append(args, query.CustomerID().Bytes())
	}
	sql += ` ORDER BY o.id, op.id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			id         uuid.UUID
			customerID uuid.UUID
			status     int
			productID  *uuid.UUID
		)

		if err = rows.Scan(&id, &customerID, &status, &productID); err != nil {
			return nil, err
		}

		pos, ok := index[id]
		if !ok {
			orderID, idErr := kernel.UUIDFromBytes(id[:])
			if idErr != nil {
				return nil, idErr
			}
			custID, idErr := kernel.UUIDFromBytes(customerID[:])
			if idErr != nil {
				return nil, idErr
			}

			orders = append(orders, OrderResponse{
				ID:         orderID,
				CustomerID: custID,
				Status:     order.Status(status),
				ProductIDs: make([]kernel.UUID, 0),
			})
			pos = len(orders) - 1
			index[id] = pos
		}

		if productID != nil {
			pID, idErr := kernel.UUIDFromBytes((*productID)[:])
			if idErr != nil {
				return nil, idErr
			}
			orders[pos].ProductIDs = append(orders[pos].ProductIDs, pID)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
