// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Association rows live in the order_products table and are loaded in
// insertion order so line order survives round trips.
type OrderDTO struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID         `gorm:"type:uuid;index"`
	Status     int               `gorm:"index"`
	Products   []OrderProductDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderProductDTO represents one association row linking an order to a product.
// There is no quantity column: a product on an order N times is N rows, and
// shipping decrements its inventory N times. The autoincrement key preserves
// line order.
type OrderProductDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for association rows.
func (OrderProductDTO) TableName() string {
	return "order_products"
}

// fromDomain converts an order domain aggregate to its database representation.
// Emits one association row per order line, in line order.
func fromDomain(aggregate *order.Order) OrderDTO {
	productIDs := aggregate.ProductIDs()
	products := make([]OrderProductDTO, 0, len(productIDs))
	for _, id := range productIDs {
		products = append(products, OrderProductDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: id.Bytes(),
		})
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		Status:     int(aggregate.Status()),
		Products:   products,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and associations using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	productIDs := make([]kernel.UUID, 0, len(dto.Products))
	for _, row := range dto.Products {
		productID, rowErr := kernel.UUIDFromBytes(row.ProductID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		productIDs = append(productIDs, productID)
	}

	return order.RestoreOrder(id, customerID, order.Status(dto.Status), productIDs)
}
