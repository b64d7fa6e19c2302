package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
)

// ErrProductUnavailable is returned when at least one product on the order has
// no inventory left. The check short-circuits: products after the first
// unavailable one are not inspected, and nothing is mutated.
var ErrProductUnavailable = errors.New("product unavailable")

// ShipmentService is a domain service responsible for shipping an order:
// verifying that every product on the order is in stock, consuming one unit
// of inventory per order line, and transitioning the order to shipped.
//
// Key responsibilities:
//   - Validating the order and its product snapshot before shipping
//   - Running the availability pass before any mutation
//   - Decrementing inventory exactly once per order line
//   - Delegating the status transition to the Order aggregate
//
// Business rules:
//   - Any product with inventory <= 0 fails the whole shipment with no mutation
//   - The decrement pass runs only after the availability pass succeeds in full
//   - A product appearing on two order lines is decremented twice
//     (the caller supplies one aggregate instance per line)
//
// Example usage:
//
//	svc := services.NewShipmentService()
//	err := svc.Ship(ord, products)
//	if errors.Is(err, services.ErrProductUnavailable) {
//	    // Out of stock: nothing was decremented, order still pending
//	    return
//	}
//	if err != nil {
//	    // Order was not shippable
//	    return
//	}
//	// Every product lost one unit and the order is shipped
type ShipmentService struct{}

// NewShipmentService creates a new ShipmentService instance.
func NewShipmentService() ShipmentService {
	return ShipmentService{}
}

// Ship runs the shipping workflow against an order and its product snapshot.
//
// Parameters:
//   - ord: The order to ship (must be valid and shippable)
//   - products: The order's products, one entry per order line, in line order.
//     The slice is a point-in-time snapshot loaded by the caller.
//
// Returns:
//   - nil when every product was decremented and the order transitioned to shipped
//   - ErrProductUnavailable when any product has inventory <= 0 (no mutation at all)
//   - validation or transition errors from the order aggregate
//
// The two passes are deliberately separate: the availability pass is pure, so
// a failure there leaves every product untouched. Within a single call the
// mutation pass cannot fail partway; persistence failures are the caller's
// transaction to roll back.
func (s ShipmentService) Ship(ord *order.Order, products []*product.Product) error {
	if err := ord.Validate(); err != nil {
		return err
	}

	if err := ord.Status().ValidateShip(); err != nil {
		return err
	}

	if err := s.checkAvailability(products); err != nil {
		return err
	}

	for _, p := range products {
		p.DecrementInventory()
	}

	return ord.Ship()
}

// checkAvailability verifies that every product in the snapshot has inventory.
// Fails fast on the first unavailable product; performs no mutation.
func (s ShipmentService) checkAvailability(products []*product.Product) error {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}

		if !p.IsAvailable() {
			return ErrProductUnavailable
		}
	}

	return nil
}
