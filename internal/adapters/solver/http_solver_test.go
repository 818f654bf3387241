package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fleet-routing-service/internal/ports"
)

func solveRequest() ports.SolverRequest {
	return ports.SolverRequest{
		Stops: []ports.SolverStop{
			{ID: "A", Location: []float64{0, 0}, Kind: "pickup"},
			{ID: "B", Location: []float64{0, 1}, Kind: "delivery"},
		},
		Vehicles: []ports.SolverVehicle{{ID: "v1", MaxWeightKg: 100}},
	}
}

func TestSolveDecodesResponse(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/routes/solve" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var in ports.SolverRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ports.SolverResponse{
			VehicleID:        "v1",
			Sequence:         []string{"A", "B"},
			TotalDistanceKm:  111.2,
			TotalDurationSec: 6600,
			Legs:             []ports.SolverLeg{{FromStopID: "A", ToStopID: "B", DistanceKm: 111.2, BaseDurationSec: 6600}},
		})
	}))
	defer srv.Close()

	c, err := NewHTTPSolverClient(srv.URL, "secret")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	out, err := c.Solve(context.Background(), solveRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.VehicleID != "v1" || len(out.Legs) != 1 {
		t.Fatalf("response mismatch: %+v", out)
	}
	if gotAuth != "secret" {
		t.Fatalf("auth header = %q, want the api key", gotAuth)
	}
}

func TestSolveRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(ports.SolverResponse{
			VehicleID: "v1",
			Sequence:  []string{"A"},
			Legs:      []ports.SolverLeg{{FromStopID: "A", ToStopID: "A"}},
		})
	}))
	defer srv.Close()

	c, _ := NewHTTPSolverClient(srv.URL, "")

	out, err := c.Solve(context.Background(), solveRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.VehicleID != "v1" {
		t.Fatalf("response mismatch: %+v", out)
	}
	if calls.Load() != 2 {
		t.Fatalf("server calls = %d, want 2 (one 503, one success)", calls.Load())
	}
}

func TestSolveDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c, _ := NewHTTPSolverClient(srv.URL, "")

	_, err := c.Solve(context.Background(), solveRequest())
	if err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want a 400 status error", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("server calls = %d, want 1 (no retry on 4xx)", calls.Load())
	}
}

func TestSolveHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	c, _ := NewHTTPSolverClient(srv.URL, "")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Solve(ctx, solveRequest())
	if err == nil {
		t.Fatal("expected a context error")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("cancellation took %v, should return promptly", elapsed)
	}
}

func TestNewHTTPSolverClientRejectsEmptyURL(t *testing.T) {
	if _, err := NewHTTPSolverClient("  ", ""); err == nil {
		t.Fatal("expected an error for an empty base URL")
	}
}
