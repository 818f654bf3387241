package ports

import (
	"context"

	"fleet-routing-service/internal/domain"
)

// Port: boundary for resolving shipment stops from the persistence layer.
type ShipmentRepository interface {
	// ListStops returns the stops for the given shipment IDs.
	ListStops(ctx context.Context, ids []string) ([]domain.Stop, error)
}

// Port: boundary for listing vehicles available for assignment.
type VehicleRepository interface {
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
}
