package domain

import (
	"fmt"
	"strings"
	"time"
)

// StopKind classifies what happens at a stop.
type StopKind string

const (
	StopPickup   StopKind = "pickup"
	StopDelivery StopKind = "delivery"
	StopWaypoint StopKind = "waypoint"
)

// ParseStopKind rejects unrecognized kinds at the boundary.
func ParseStopKind(s string) (StopKind, error) {
	switch StopKind(strings.ToLower(strings.TrimSpace(s))) {
	case StopPickup:
		return StopPickup, nil
	case StopDelivery:
		return StopDelivery, nil
	case StopWaypoint:
		return StopWaypoint, nil
	default:
		return "", &InvalidInputError{Field: "kind", Reason: fmt.Sprintf("unknown stop kind %q", s)}
	}
}

// SecurityLevel of a shipment.
type SecurityLevel string

const (
	SecurityStandard SecurityLevel = "standard"
	SecurityElevated SecurityLevel = "elevated"
	SecurityHigh     SecurityLevel = "high"
)

func ParseSecurityLevel(s string) (SecurityLevel, error) {
	switch SecurityLevel(strings.ToLower(strings.TrimSpace(s))) {
	case SecurityStandard, "":
		return SecurityStandard, nil
	case SecurityElevated:
		return SecurityElevated, nil
	case SecurityHigh:
		return SecurityHigh, nil
	default:
		return "", &InvalidInputError{Field: "security_level", Reason: fmt.Sprintf("unknown security level %q", s)}
	}
}

// ShipmentType drives handling rules. Restricted and military cargo require
// secure routing and extra dwell time.
type ShipmentType string

const (
	ShipmentStandard   ShipmentType = "standard"
	ShipmentFragile    ShipmentType = "fragile"
	ShipmentRestricted ShipmentType = "restricted"
	ShipmentMilitary   ShipmentType = "military"
)

func ParseShipmentType(s string) (ShipmentType, error) {
	switch ShipmentType(strings.ToLower(strings.TrimSpace(s))) {
	case ShipmentStandard, "":
		return ShipmentStandard, nil
	case ShipmentFragile:
		return ShipmentFragile, nil
	case ShipmentRestricted:
		return ShipmentRestricted, nil
	case ShipmentMilitary:
		return ShipmentMilitary, nil
	default:
		return "", &InvalidInputError{Field: "shipment_type", Reason: fmt.Sprintf("unknown shipment type %q", s)}
	}
}

// Restricted shipments trigger secure routing in the solver payload.
func (t ShipmentType) Restricted() bool {
	return t == ShipmentRestricted || t == ShipmentMilitary
}

// Represents one serviceable location in a route request.
// A Stop is immutable once included in an optimization input; the optimizer
// references stops by ID and never writes back to the owning shipment record.
type Stop struct {
	ID                string
	Coordinate        Coordinate
	Kind              StopKind
	WeightKg          float64
	VolumeM3          float64
	RequiresSignature bool
	SecurityLevel     SecurityLevel
	ShipmentType      ShipmentType
	ScheduledTime     time.Time
}

// Validate checks coordinate ranges and non-negative load figures.
func (s Stop) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &InvalidInputError{Field: "id", Reason: "stop id must be non-empty"}
	}
	if err := s.Coordinate.Validate(); err != nil {
		return fmt.Errorf("stop %s: %w", s.ID, err)
	}
	if s.WeightKg < 0 {
		return &InvalidInputError{Field: "weight_kg", Reason: "must be non-negative"}
	}
	if s.VolumeM3 < 0 {
		return &InvalidInputError{Field: "volume_m3", Reason: "must be non-negative"}
	}
	return nil
}
