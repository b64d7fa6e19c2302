package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOutOfStockProductsQueryIsNotConstructed = errors.New(
		"GetOutOfStockProductsQuery must be created via NewGetOutOfStockProductsQuery constructor",
	)
)

// GetOutOfStockProductsQuery retrieves every product with no inventory left.
// Products with zero or negative counts block any order that contains them,
// so the stock report job surfaces them periodically.
type GetOutOfStockProductsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOutOfStockProductsQuery creates a query to list exhausted products.
// This is a parameterless query.
func NewGetOutOfStockProductsQuery() GetOutOfStockProductsQuery {
	return GetOutOfStockProductsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOutOfStockProductsQueryIsNotConstructed if validation fails.
func (q GetOutOfStockProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetOutOfStockProductsQueryIsNotConstructed)
}

// ProductResponse represents one product as read from the store.
type ProductResponse struct {
	ID        kernel.UUID
	Inventory int
}
