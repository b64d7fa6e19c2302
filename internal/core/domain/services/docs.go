// Package services contains domain services that coordinate behavior across
// multiple aggregates.
//
// The package includes:
//   - ShipmentService: ships an order by checking product availability,
//     consuming inventory per order line, and transitioning the order status
//
// Domain services hold logic that does not naturally belong to a single
// aggregate. They operate purely on in-memory aggregates; persistence and
// transaction boundaries are the application layer's responsibility.
package services
