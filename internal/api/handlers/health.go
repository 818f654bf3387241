package handlers

import (
	"net/http"
)

// Health reports process liveness only. Solver and provider readiness is
// deliberately not probed here: the optimizer degrades to its fallback when
// they are down, so a dead solver must not take the service out of rotation.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "fleet-routing",
	})
}
