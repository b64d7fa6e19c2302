// Package order provides domain entities and business logic for order management
// in the fulfillment system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, product associations, and lifecycle
//   - Status: A state machine that enforces the single pending -> shipped transition
//
// Key business rules:
//   - Orders must have a valid unique identifier and a customer reference
//   - Order status follows a defined workflow: pending -> shipped, with no way back
//   - An order is shippable only if it has at least one product association
//     and is not already shipped
//   - Product associations carry quantity by repetition: the same product id
//     listed twice means two units
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
