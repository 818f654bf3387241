package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"fleet-routing-service/internal/api/dto"
	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/ports"
	"fleet-routing-service/internal/services"
)

type RouteHandler struct {
	Optimizer *services.RouteOptimizer
	Shipments ports.ShipmentRepository
	Vehicles  ports.VehicleRepository
}

// Optimize runs one optimization call. Stops can be supplied inline or as
// shipment IDs resolved through the repository; vehicles default to the
// stored fleet when not supplied inline.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var in dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	var extraStops []domain.Stop
	if len(in.ShipmentIDs) > 0 {
		if h.Shipments == nil {
			writeError(w, r, http.StatusBadRequest, "shipment_ids not supported without a shipment store")
			return
		}
		stops, err := h.Shipments.ListStops(r.Context(), in.ShipmentIDs)
		if err != nil {
			log.Printf("resolve shipments failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		extraStops = stops
	}

	req, err := requestFromDTO(in, extraStops)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Vehicles) == 0 && h.Vehicles != nil {
		vehicles, err := h.Vehicles.ListVehicles(r.Context())
		if err != nil {
			log.Printf("list vehicles failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		req.Vehicles = vehicles
	}

	plan, err := h.Optimizer.Optimize(r.Context(), req)
	if err != nil {
		status, msg := classifyOptimizeError(err)
		if status == http.StatusInternalServerError {
			log.Printf("optimize failed: %v", err)
		}
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, planToDTO(plan))
}

// classifyOptimizeError maps the error taxonomy onto HTTP statuses: business
// rule and validation failures are the caller's problem, everything else is
// ours.
func classifyOptimizeError(err error) (int, string) {
	var invalid *domain.InvalidInputError
	var empty *domain.EmptyInputError

	switch {
	case errors.Is(err, domain.ErrNoShipments):
		return http.StatusUnprocessableEntity, "no shipments to route"
	case errors.Is(err, domain.ErrNoSuitableVehicle):
		return http.StatusUnprocessableEntity, "no suitable vehicle for shipment set"
	case errors.As(err, &invalid), errors.As(err, &empty):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
