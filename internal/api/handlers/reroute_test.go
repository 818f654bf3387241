package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-routing-service/internal/api/dto"
	"fleet-routing-service/internal/services"
)

func postEvaluate(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := &RerouteHandler{Monitor: services.NewRerouteMonitor(services.RerouteMonitorConfig{})}
	req := httptest.NewRequest(http.MethodPost, "/routes/evaluate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Evaluate(rec, req)
	return rec
}

const evaluateRouteEnvelope = `{
	"id": "rt-1",
	"vehicle_id": "v1",
	"sequence": ["A", "B"],
	"stops": [
		{"id": "A", "lon": 0, "lat": 0, "kind": "pickup"},
		{"id": "B", "lon": 0, "lat": 1, "kind": "delivery"}
	],
	"legs": [
		{"from_stop_id": "A", "to_stop_id": "B", "distance_km": 111.2, "base_duration_sec": 3600,
		 "delay_factor": 1.0, "adjusted_duration_sec": 3600,
		 "depart_at": "2026-03-02T08:00:00Z", "arrive_at": "2026-03-02T09:00:00Z"}
	],
	"total_distance_km": 111.2,
	"depart_at": "2026-03-02T08:00:00Z",
	"committed_arrival": "2026-03-02T09:00:00Z"
}`

func TestEvaluateEndpointKeep(t *testing.T) {
	body := `{"route": ` + evaluateRouteEnvelope + `,
		"traffic": {"overall_condition": "light"},
		"weather": {"condition": "clear", "visibility_m": 10000, "temperature_c": 15}}`

	rec := postEvaluate(t, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out dto.EvaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Decision != "keep" {
		t.Fatalf("decision = %s, want keep", out.Decision)
	}
	if out.Patched != nil {
		t.Fatal("keep must not carry a patched route")
	}
}

func TestEvaluateEndpointPatchReturnsRoute(t *testing.T) {
	body := `{"route": ` + evaluateRouteEnvelope + `,
		"traffic": {"overall_condition": "heavy"},
		"weather": {"condition": "clear", "visibility_m": 10000, "temperature_c": 15}}`

	rec := postEvaluate(t, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out dto.EvaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Decision != "patch-etas" {
		t.Fatalf("decision = %s, want patch-etas", out.Decision)
	}
	if out.Patched == nil {
		t.Fatal("patch decision must carry the patched route")
	}
	if got := out.Patched.Legs[0].AdjustedDurationSec; got != 5400 {
		t.Fatalf("patched duration = %d, want 5400 under heavy traffic", got)
	}
	if out.State != "stable" {
		t.Fatalf("state = %s, want stable after a patch", out.State)
	}
}

func TestEvaluateEndpointSevereWeatherReoptimizes(t *testing.T) {
	body := `{"route": ` + evaluateRouteEnvelope + `,
		"traffic": {"overall_condition": "light"},
		"weather": {"condition": "storm", "visibility_m": 5000, "temperature_c": 10}}`

	rec := postEvaluate(t, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out dto.EvaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Decision != "reoptimize" {
		t.Fatalf("decision = %s, want reoptimize", out.Decision)
	}
	if out.State != "reroute-pending" {
		t.Fatalf("state = %s, want reroute-pending", out.State)
	}
}

func TestEvaluateEndpointMixedCaseSevereTraffic(t *testing.T) {
	// "Severe" doubles the hour-long leg: projected arrival lands an hour
	// past the commitment, which must trigger the overrun check regardless
	// of the caller's casing.
	body := `{"route": ` + evaluateRouteEnvelope + `,
		"traffic": {"overall_condition": "Severe"},
		"weather": {"condition": "clear", "visibility_m": 10000, "temperature_c": 15}}`

	rec := postEvaluate(t, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out dto.EvaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Decision != "reoptimize" {
		t.Fatalf("decision = %s, want reoptimize", out.Decision)
	}
}

func TestEvaluateEndpointRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"unknown field", `{"nope": true}`},
		{"unknown traffic is tolerated but route required", `{"route": {"id": ""}, "traffic": null, "weather": null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postEvaluate(t, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}
