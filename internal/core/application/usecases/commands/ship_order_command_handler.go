package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ShipOrderCommandHandler orchestrates the shipping workflow.
// Loads the order and its product snapshot, runs the ShipmentService, and
// persists every decremented product together with the status transition
// inside a single transaction.
//
// The transaction closes the partial-shipment gap: either every order line's
// decrement and the pending -> shipped transition land together, or none do.
// What remains open is the race between concurrent ship requests reading the
// same inventory before either commits; there is no row locking or
// compare-and-set here.
//
// Example:
//
//	handler := NewShipOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewShipOrderCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("No such order")
//	case errors.Is(err, services.ErrProductUnavailable):
//	    log.Println("Out of stock")
//	case err != nil:
//	    log.Printf("Shipping failed: %v", err)
//	default:
//	    log.Println("Order shipped")
//	}
type ShipOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
}

// NewShipOrderCommandHandler creates a handler for shipping operations.
// Requires a UoWFactory for coordinating transactional updates across both
// repositories. The publisher may be nil; event publishing is then skipped.
func NewShipOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the ship command.
//
// Retrieves the order (ObjectNotFound propagates untouched), loads its product
// snapshot in line order, and delegates the availability check, inventory
// decrements and status transition to the ShipmentService. Every touched
// product and the order itself are updated within one transaction; any error
// rolls the whole shipment back. After a successful commit an OrderShipped
// event is published best effort.
func (h ShipOrderCommandHandler) Handle(ctx context.Context, command ShipOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	snapshot, touched, err := h.loadSnapshot(ctx, productRepo, aggregate)
	if err != nil {
		return err
	}

	if err = services.NewShipmentService().Ship(aggregate, snapshot); err != nil {
		return err
	}

	for _, p := range touched {
		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		_ = h.publisher.PublishOrderShipped(ctx, aggregate)
	}

	return nil
}

// loadSnapshot resolves the order's product associations into aggregates.
//
// The snapshot contains one entry per order line, in line order. A product
// appearing on several lines resolves to the same aggregate instance each
// time, so the ShipmentService decrements it once per line. The second return
// value lists each distinct aggregate exactly once for persisting.
func (h ShipOrderCommandHandler) loadSnapshot(
	ctx context.Context,
	productRepo ports.ProductRepository,
	aggregate *order.Order,
) ([]*product.Product, []*product.Product, error) {
	ids := aggregate.ProductIDs()

	loaded := make(map[kernel.UUID]*product.Product, len(ids))
	snapshot := make([]*product.Product, 0, len(ids))
	touched := make([]*product.Product, 0, len(ids))

	for _, id := range ids {
		p, ok := loaded[id]
		if !ok {
			var err error
			p, err = productRepo.Get(ctx, id)
			if err != nil {
				return nil, nil, err
			}
			loaded[id] = p
			touched = append(touched, p)
		}
		snapshot = append(snapshot, p)
	}

	return snapshot, touched, nil
}
