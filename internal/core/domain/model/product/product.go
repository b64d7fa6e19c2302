package product

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")
)

// Product represents a sellable item with a tracked inventory count.
// It is an aggregate root owned by the store; the shipping workflow only
// reads availability and decrements inventory one unit at a time.
//
// Product follows these invariants:
//   - Must have a valid unique identifier
//   - Inventory is intended to be non-negative; new products reject negative
//     counts, while restoration tolerates any value already in the store
//   - Inventory is only mutated through DecrementInventory
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// inventory is the number of units on hand
	inventory int

	// isConstructed ensures the product was created via a constructor
	isConstructed bool
}

// NewProduct creates a new Product instance with validation.
//
// Parameters:
//   - id: Unique identifier for the product (must be valid UUID)
//   - inventory: Initial unit count (must not be negative)
//
// Returns:
//   - *Product: The created product if all validations pass
//   - error: Validation error if any parameter is invalid
func NewProduct(id kernel.UUID, inventory int) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setInventory(inventory),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persisted state.
// Unlike NewProduct it accepts any inventory value: a negative count can
// exist in the store after racing decrements and must still be loadable.
// Used by repository implementations only.
func RestoreProduct(id kernel.UUID, inventory int) (*Product, error) {
	p := &Product{
		inventory:     inventory,
		isConstructed: true,
	}

	if err := p.setID(id); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product instance was properly constructed through a factory method.
//
// Returns:
//   - nil if the product is valid
//   - ErrProductIsNotConstructed if the product was not created via a constructor
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}

	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Inventory returns the current unit count.
func (p *Product) Inventory() int {
	return p.inventory
}

// IsAvailable reports whether at least one unit is on hand.
// A product with zero or negative inventory blocks any order that contains it.
func (p *Product) IsAvailable() bool {
	return p.inventory > 0
}

// DecrementInventory reduces the unit count by exactly one.
//
// There is no floor at zero: callers are expected to have run the
// availability check first, and the count is decremented unconditionally
// afterwards. A negative result is only reachable through a race between
// concurrent shipments, which is a documented gap rather than a supported
// state (see services.ShipmentService).
func (p *Product) DecrementInventory() {
	p.inventory--
}

// setID validates and sets the product's unique identifier.
// This is a private method used only during construction.
func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setInventory validates and sets the initial inventory.
// Inventory must not be negative on creation.
func (p *Product) setInventory(inventory int) error {
	if inventory < 0 {
		return errs.NewValueIsInvalidErrorWithCause("inventory is invalid",
			fmt.Errorf("%d is negative", inventory))
	}
	p.inventory = inventory
	return nil
}
