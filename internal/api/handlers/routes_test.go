package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleet-routing-service/internal/adapters/cache"
	"fleet-routing-service/internal/api/dto"
	"fleet-routing-service/internal/services"
)

func newRouteHandler() *RouteHandler {
	routeCache := services.NewRouteCache(cache.NewMemoryStore(), time.Minute)
	optimizer := services.NewRouteOptimizer(nil, nil, nil, routeCache, services.OptimizerConfig{})
	return &RouteHandler{Optimizer: optimizer}
}

func postOptimize(t *testing.T, h *RouteHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/routes/optimize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)
	return rec
}

const validOptimizeBody = `{
	"stops": [
		{"id": "A", "lon": 0, "lat": 0, "kind": "pickup", "weight_kg": 10, "scheduled_time": "2026-03-02T09:00:00Z"},
		{"id": "B", "lon": 0, "lat": 0.01, "kind": "delivery", "weight_kg": 10, "scheduled_time": "2026-03-02T10:00:00Z"}
	],
	"vehicles": [
		{"id": "v1", "kind": "van", "max_weight_kg": 100, "max_volume_m3": 2, "efficiency_km_per_l": 10}
	],
	"depart_at": "2026-03-02T08:00:00Z"
}`

func TestOptimizeEndpointReturnsPlan(t *testing.T) {
	rec := postOptimize(t, newRouteHandler(), validOptimizeBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var plan dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(plan.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(plan.Routes))
	}
	if plan.SolverUsed {
		t.Fatal("no solver configured, plan must come from the fallback")
	}
	if plan.Fingerprint == "" {
		t.Fatal("plan must carry a fingerprint")
	}
	if got := plan.Routes[0].Sequence; len(got) != 2 || got[0] != "A" {
		t.Fatalf("sequence = %v, want [A B]", got)
	}
}

func TestOptimizeEndpointRejectsBadInput(t *testing.T) {
	h := newRouteHandler()

	cases := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"unknown field", `{"bogus": 1}`, http.StatusBadRequest},
		{"trailing garbage", validOptimizeBody + `{}`, http.StatusBadRequest},
		{"unknown stop kind", `{"stops": [{"id": "A", "lon": 0, "lat": 0, "kind": "teleport"}], "vehicles": [{"id": "v1", "max_weight_kg": 10}]}`, http.StatusBadRequest},
		{"out of range latitude", `{"stops": [{"id": "A", "lon": 0, "lat": 123, "kind": "pickup"}], "vehicles": [{"id": "v1", "max_weight_kg": 10}]}`, http.StatusBadRequest},
		{"no stops", `{"vehicles": [{"id": "v1", "max_weight_kg": 10}]}`, http.StatusUnprocessableEntity},
		{"no vehicles", `{"stops": [{"id": "A", "lon": 0, "lat": 0, "kind": "pickup"}]}`, http.StatusUnprocessableEntity},
		{"shipment ids without store", `{"shipment_ids": ["shp-1"], "vehicles": [{"id": "v1", "max_weight_kg": 10}]}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postOptimize(t, h, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestOptimizeEndpointMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/routes/optimize", nil)
	rec := httptest.NewRecorder()
	newRouteHandler().Optimize(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Fatal("405 must advertise the allowed method")
	}
}
