// Package queries contains read-only operations over the store.
// Implements the Query side of the CQRS architecture: handlers read
// denormalized rows directly through the database connection and never
// touch domain aggregates.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves orders, optionally narrowed to a single customer.
// A nil customer filter returns every order in the store.
//
// Example:
//
//	query, _ := NewGetOrdersQuery(nil) // all orders
//	handler := NewGetOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Found %d orders\n", len(orders))
type GetOrdersQuery struct {
	customerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list orders.
// Pass nil to list all orders, or a customer id to list only that
// customer's orders. A non-nil filter must be a valid UUID.
func NewGetOrdersQuery(customerID *kernel.UUID) (GetOrdersQuery, error) {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer filter, or nil when listing all orders.
func (q GetOrdersQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

// OrderResponse represents one order as read from the store.
// ProductIDs lists the order's association rows in line order, duplicates
// preserved; it is empty (not nil) for orders without associations.
type OrderResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Status     order.Status
	ProductIDs []kernel.UUID
}
