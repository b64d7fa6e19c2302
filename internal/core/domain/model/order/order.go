package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderHasNoProducts is returned when shipping is attempted on an order
	// without any product associations.
	ErrOrderHasNoProducts = errors.New("order has no products")
)

// Order represents a customer order in the system. It is the aggregate root that
// manages the order lifecycle from creation through shipping.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must reference a customer
//   - Status transitions only pending -> shipped, never the reverse
//   - Product associations are fixed at creation; one entry per order line
//   - Can only be created through NewOrder or RestoreOrder
//
// A product id may appear in the association list more than once: each entry
// represents one unit of that product on the order. Shipping consumes one unit
// of inventory per entry.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the customer who placed the order.
	// It is opaque to this subsystem: never resolved, only stored and filtered on.
	customerID kernel.UUID

	// productIDs holds the order's product associations in line order.
	// Duplicates are intentional (quantity by repetition).
	productIDs []kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. Orders always start
// in Pending status regardless of what a caller might wish for; there is no
// way to create an order already shipped.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerID: Reference to the ordering customer (must be valid UUID)
//   - productIDs: Product associations, one entry per order line; may be empty
//     (the order is then valid but never shippable)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, customerID kernel.UUID, productIDs []kernel.UUID) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setProductIDs(productIDs),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state, including its status.
// Unlike NewOrder it accepts any valid status, allowing shipped orders to be
// loaded back into memory. Used by repository implementations only.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	status Status,
	productIDs []kernel.UUID,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStatus(status),
		o.setProductIDs(productIDs),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
// This prevents bypassing validation by directly instantiating the struct.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via a constructor
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ProductIDs returns the order's product associations in line order.
// The returned slice is a copy; duplicates are preserved. An order without
// associations yields an empty slice, which is valid data, not an error.
func (o *Order) ProductIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(o.productIDs))
	copy(ids, o.productIDs)
	return ids
}

// Shippable reports whether the order can be shipped.
//
// An order is shippable iff it has at least one product association AND its
// status is not already Shipped. This is a pure predicate: no side effects,
// no error conditions.
func (o *Order) Shippable() bool {
	return len(o.productIDs) > 0 && o.status != Shipped
}

// Ship transitions the order to Shipped status.
//
// This method enforces the following business rules:
//   - The order must have at least one product association
//   - The order must not already be shipped
//
// On failure the order is left untouched. Inventory is not this aggregate's
// concern; callers run the availability check and decrements before invoking
// Ship (see services.ShipmentService).
//
// Returns:
//   - nil on successful transition
//   - ErrOrderHasNoProducts if the order has no associations
//   - a status transition error if the order cannot ship from its current state
func (o *Order) Ship() error {
	if len(o.productIDs) == 0 {
		return ErrOrderHasNoProducts
	}

	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the customer reference.
// This is a private method used only during construction.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = customerID
	return nil
}

// setStatus validates and sets the order status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setProductIDs validates and copies the product associations.
// Every entry must be a valid UUID; duplicates and an empty list are allowed.
func (o *Order) setProductIDs(productIDs []kernel.UUID) error {
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("product id", err)
		}
	}

	o.productIDs = make([]kernel.UUID, len(productIDs))
	copy(o.productIDs, productIDs)
	return nil
}
