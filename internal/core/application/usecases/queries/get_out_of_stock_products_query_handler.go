package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOutOfStockProductsQueryHandler lists products whose inventory is exhausted.
// Feeds the periodic stock report; negative counts (possible after racing
// shipments) are reported alongside zero.
type GetOutOfStockProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetOutOfStockProductsQueryHandler creates a handler for out-of-stock queries.
// Requires a GORM database connection for query execution.
func NewGetOutOfStockProductsQueryHandler(db *gorm.DB) GetOutOfStockProductsQueryHandler {
	return GetOutOfStockProductsQueryHandler{db: db}
}

// Handle executes the query to retrieve exhausted products.
// Results are sorted by product id for consistent output.
func (h GetOutOfStockProductsQueryHandler) Handle(
	ctx context.Context,
	query GetOutOfStockProductsQuery,
) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]ProductResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			inventory
		FROM products
		WHERE inventory <= 0
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			inventory int
		)

		if err = rows.Scan(&id, &inventory); err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		products = append(products, ProductResponse{
			ID:        productID,
			Inventory: inventory,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
