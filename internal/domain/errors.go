package domain

import (
	"errors"
	"fmt"
)

// Business-rule failures surfaced to callers.
var (
	ErrNoShipments       = errors.New("no shipments to route")
	ErrNoSuitableVehicle = errors.New("no suitable vehicle for shipment set")
)

// ErrSolverUnavailable marks external solver failures. It is internal to the
// optimizer: every occurrence is converted into a fallback run and logged,
// never returned to the caller.
var ErrSolverUnavailable = errors.New("external solver unavailable")

// InvalidInputError reports a malformed field value (coordinate out of range,
// non-positive speed). Always surfaced, never defaulted.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// EmptyInputError reports a missing collection where at least one element is
// required (coordinates for a bounding box, stops for a route).
type EmptyInputError struct {
	What string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: %s required", e.What)
}
