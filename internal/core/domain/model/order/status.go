package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a single transition to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Shipped
//
// Shipped is terminal: no transition leads out of it, and the reverse
// transition does not exist.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting to be shipped.
	Pending

	// Shipped indicates the order has left the warehouse.
	// This is a final state with no further transitions allowed.
	Shipped
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "unknown",
		Pending: "pending",
		Shipped: "shipped",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending: "pending",
		Shipped: "shipped",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Shipped.
// Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Returns:
//   - "pending" or "shipped" for valid statuses
//   - "unknown" for invalid status values
//
// The lowercase forms double as the wire representation in JSON responses.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateShip checks if the status allows shipping without performing the transition.
//
// Only Pending orders can be shipped. Shipped orders cannot ship again,
// and Unknown is never a valid starting state.
//
// Returns:
//   - nil if shipping is allowed from current status
//   - error with details if shipping is not allowed
//
// This method provides shippability validation without side effects,
// useful for pre-validation and business logic checks.
func (s Status) ValidateShip() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to ship", s.String()),
		)
	}
	return nil
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Pending -> Shipped
//
// Invalid transitions:
//   - Shipped -> Shipped (already shipped)
//   - Unknown -> Shipped (invalid initial state)
//
// Returns:
//   - (Shipped, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
//
// This method is used by Order.Ship() to enforce state transitions.
func (s Status) Ship() (Status, error) {
	if err := s.ValidateShip(); err != nil {
		return 0, err
	}

	return Shipped, nil
}
