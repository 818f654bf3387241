package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"fleet-routing-service/internal/api/dto"
	"fleet-routing-service/internal/services"
)

type RerouteHandler struct {
	Monitor *services.RerouteMonitor
}

// Evaluate decides whether a live route should be kept, ETA-patched, or
// fully re-optimized under the supplied conditions. When the decision is
// patch-etas the patched route is returned in the same response.
func (h *RerouteHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var in dto.EvaluateRequest

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

	route, err := routeFromEnvelope(in.Route)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	traffic := trafficFromDTO(in.Traffic)
	weather := weatherFromDTO(in.Weather)

	decision := h.Monitor.Evaluate(route, traffic, weather)

	res := dto.EvaluateResponse{
		Decision: string(decision),
		State:    string(h.Monitor.State(route.ID)),
	}
	if decision == services.DecisionPatchETAs {
		patched := h.Monitor.PatchETAs(route, traffic, weather)
		out := routeToDTO(*patched)
		res.Patched = &out
	}

	writeJSON(w, r, http.StatusOK, res)
}
