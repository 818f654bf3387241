package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/geo"
)

func TestTrafficProviderParsesSnapshot(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/traffic" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"overall_condition": "Heavy",
			"incidents": [
				{"coordinates": [-112.07, 33.45], "severity": "SEVERE", "description": "overturned truck"},
				{"coordinates": [1.0], "severity": "low", "description": "dropped, malformed"}
			],
			"timestamp": "2026-03-02T08:00:00Z"
		}`))
	}))
	defer srv.Close()

	p, err := NewHTTPTrafficProvider(srv.URL, "key")
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	snap, err := p.Current(context.Background(), geo.Bounds{MinLon: -113, MinLat: 33, MaxLon: -111, MaxLat: 34})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.OverallCondition != domain.TrafficHeavy {
		t.Fatalf("condition = %s, want heavy (lowercased)", snap.OverallCondition)
	}
	if len(snap.Incidents) != 1 {
		t.Fatalf("incidents = %d, want 1 (malformed coordinates dropped)", len(snap.Incidents))
	}
	if snap.Incidents[0].Severity != domain.IncidentSevere {
		t.Fatalf("severity = %s, want severe (lowercased)", snap.Incidents[0].Severity)
	}
	if gotQuery == "" {
		t.Fatal("bounding box must be passed as query parameters")
	}
}

func TestTrafficProviderSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p, _ := NewHTTPTrafficProvider(srv.URL, "")
	if _, err := p.Current(context.Background(), geo.Bounds{}); err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}

func TestWeatherProviderParsesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/weather" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"condition": "Snow",
			"precipitation": 4.2,
			"visibility": 800,
			"wind_speed": 35,
			"temperature": -1,
			"timestamp": "2026-03-02T08:00:00Z"
		}`))
	}))
	defer srv.Close()

	p, err := NewHTTPWeatherProvider(srv.URL, "key")
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	snap, err := p.Current(context.Background(), domain.Coordinate{Lon: -112, Lat: 33.4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Condition != "snow" {
		t.Fatalf("condition = %q, want lowercased snow", snap.Condition)
	}
	if snap.PrecipitationMm != 4.2 || snap.VisibilityM != 800 || snap.WindSpeedKmh != 35 || snap.TemperatureC != -1 {
		t.Fatalf("snapshot mismatch: %+v", snap)
	}
}

func TestWeatherProviderRejectsInvalidPoint(t *testing.T) {
	p, _ := NewHTTPWeatherProvider("http://example.invalid", "")
	if _, err := p.Current(context.Background(), domain.Coordinate{Lon: 0, Lat: 123}); err == nil {
		t.Fatal("expected an error for an out-of-range coordinate")
	}
}
