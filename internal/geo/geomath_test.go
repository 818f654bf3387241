package geo

import (
	"errors"
	"math"
	"testing"
	"time"

	"fleet-routing-service/internal/domain"
)

func TestDistanceSymmetricAndZero(t *testing.T) {
	pairs := []struct{ a, b domain.Coordinate }{
		{domain.Coordinate{Lon: 0, Lat: 0}, domain.Coordinate{Lon: 0, Lat: 1}},
		{domain.Coordinate{Lon: -74.0, Lat: 40.7}, domain.Coordinate{Lon: 2.35, Lat: 48.85}},
		{domain.Coordinate{Lon: 179.9, Lat: -45}, domain.Coordinate{Lon: -179.9, Lat: -45}},
	}

	for _, p := range pairs {
		ab := Distance(p.a, p.b)
		ba := Distance(p.b, p.a)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
		if d := Distance(p.a, p.a); d > 1e-9 {
			t.Errorf("distance(a,a) = %v, want ~0", d)
		}
	}
}

func TestDistanceOneDegreeLatitude(t *testing.T) {
	// One degree of latitude along a meridian is ~111.19 km with R=6371.
	d := Distance(domain.Coordinate{Lon: 0, Lat: 0}, domain.Coordinate{Lon: 0, Lat: 1})
	if math.Abs(d-111.19) > 0.5 {
		t.Fatalf("distance = %v, want 111.19 +- 0.5", d)
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	a := domain.Coordinate{Lon: 10, Lat: 10}
	b := domain.Coordinate{Lon: 11, Lat: 12}
	c := domain.Coordinate{Lon: 9, Lat: 14}

	if Distance(a, c) > Distance(a, b)+Distance(b, c)+1e-9 {
		t.Fatal("triangle inequality violated")
	}
}

func TestETA(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	origin := domain.Coordinate{Lon: 0, Lat: 0}
	dest := domain.Coordinate{Lon: 0, Lat: 1}

	at, err := ETA(origin, dest, 60, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ~111.19 km at 60 km/h is roughly 1h51m.
	got := at.Sub(start)
	want := time.Duration(111.19 / 60 * float64(time.Hour))
	if diff := (got - want).Abs(); diff > time.Minute {
		t.Fatalf("eta duration = %v, want about %v", got, want)
	}
}

func TestETARejectsNonPositiveSpeed(t *testing.T) {
	var invalid *domain.InvalidInputError

	_, err := ETA(domain.Coordinate{}, domain.Coordinate{Lat: 1}, 0, time.Now())
	if !errors.As(err, &invalid) {
		t.Fatalf("speed=0: got %v, want InvalidInputError", err)
	}

	_, err = ETA(domain.Coordinate{}, domain.Coordinate{Lat: 1}, -5, time.Now())
	if !errors.As(err, &invalid) {
		t.Fatalf("speed<0: got %v, want InvalidInputError", err)
	}
}

func TestBoundingBox(t *testing.T) {
	coords := []domain.Coordinate{
		{Lon: 5, Lat: -3},
		{Lon: -1, Lat: 7},
		{Lon: 2, Lat: 0},
	}

	b, err := BoundingBox(coords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.MinLon != -1 || b.MaxLon != 5 || b.MinLat != -3 || b.MaxLat != 7 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	var empty *domain.EmptyInputError
	if _, err := BoundingBox(nil); !errors.As(err, &empty) {
		t.Fatalf("got %v, want EmptyInputError", err)
	}
}

func TestCentroid(t *testing.T) {
	coords := []domain.Coordinate{
		{Lon: 0, Lat: 0},
		{Lon: 2, Lat: 4},
	}

	c, err := Centroid(coords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lon != 1 || c.Lat != 2 {
		t.Fatalf("centroid = %+v, want (1, 2)", c)
	}

	var empty *domain.EmptyInputError
	if _, err := Centroid(nil); !errors.As(err, &empty) {
		t.Fatalf("got %v, want EmptyInputError", err)
	}
}

func TestIsNearPolyline(t *testing.T) {
	line := []domain.Coordinate{
		{Lon: 0, Lat: 0},
		{Lon: 1, Lat: 0},
		{Lon: 2, Lat: 0},
	}

	// ~0.55 km north of the midpoint of the first segment.
	near := domain.Coordinate{Lon: 0.5, Lat: 0.005}
	if !IsNearPolyline(near, line, 1.0) {
		t.Fatal("expected point within 1 km buffer")
	}
	if IsNearPolyline(near, line, 0.1) {
		t.Fatal("expected point outside 0.1 km buffer")
	}

	// Well beyond the segment ends should use endpoint distance, not the
	// infinite line.
	far := domain.Coordinate{Lon: 5, Lat: 0}
	if IsNearPolyline(far, line, 10) {
		t.Fatal("point past the polyline end should not match a 10 km buffer")
	}

	if IsNearPolyline(near, nil, 100) {
		t.Fatal("empty polyline should never match")
	}
}
