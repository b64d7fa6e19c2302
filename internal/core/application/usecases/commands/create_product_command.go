package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
)

// CreateProductCommand represents a request to register a sellable product
// with an initial inventory count.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	inventory int

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to register a new product.
// Validates that the product id is a valid UUID and inventory is not negative.
func NewCreateProductCommand(productID kernel.UUID, inventory int) (CreateProductCommand, error) {
	productCommand := CreateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productCommand.setProductID(productID),
		productCommand.setInventory(inventory),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return productCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateProductCommandIsNotConstructed if validation fails.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// ProductID returns the unique identifier for the product.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Inventory returns the initial unit count.
func (c CreateProductCommand) Inventory() int {
	return c.inventory
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setInventory(inventory int) error {
	if inventory < 0 {
		return errs.NewValueIsInvalidErrorWithCause("inventory is invalid",
			fmt.Errorf("%d is negative", inventory))
	}

	c.inventory = inventory
	return nil
}
