package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderEventPublisher notifies external consumers about order lifecycle changes.
// Publishing happens after the owning transaction commits and is best effort:
// callers log failures but never fail the business operation over them.
type OrderEventPublisher interface {
	// PublishOrderCreated announces a newly created order.
	PublishOrderCreated(ctx context.Context, aggregate *order.Order) error

	// PublishOrderShipped announces a successful shipment.
	PublishOrderShipped(ctx context.Context, aggregate *order.Order) error

	// Close flushes buffered events and releases the underlying transport.
	Close() error
}
