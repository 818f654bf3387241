package api

import (
	"net/http"

	"fleet-routing-service/internal/api/handlers"
	"fleet-routing-service/internal/ports"
	"fleet-routing-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(
	optimizer *services.RouteOptimizer,
	monitor *services.RerouteMonitor,
	shipments ports.ShipmentRepository,
	vehicles ports.VehicleRepository,
) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Optimizer: optimizer,
		Shipments: shipments,
		Vehicles:  vehicles,
	}
	rerouteHandler := &handlers.RerouteHandler{Monitor: monitor}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/routes/evaluate", rerouteHandler.Evaluate)

	return loggingMiddleware(mux)
}
