package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"fleet-routing-service/internal/platform/obs"
)

// errorBody carries the correlation ID so a caller can quote it when
// reporting a failed optimization.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("req_id=%s encode failed: method=%s path=%s err=%v",
			obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorBody{
		Error:     msg,
		RequestID: obs.RequestID(r.Context()),
	})
}
