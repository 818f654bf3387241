package ports

import (
	"context"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/geo"
)

// TrafficProvider supplies current congestion and incidents for a region.
type TrafficProvider interface {
	// Current returns a snapshot for the given bounding box.
	Current(ctx context.Context, area geo.Bounds) (*domain.TrafficSnapshot, error)
}

// WeatherProvider supplies current weather around a point.
type WeatherProvider interface {
	// Current returns a snapshot for the given point.
	Current(ctx context.Context, at domain.Coordinate) (*domain.WeatherSnapshot, error)
}
